package world

import "errors"

// BuildingType enumerates everything a construction order can place.
type BuildingType string

const (
	BuildingNone                BuildingType = ""
	BuildingMine                BuildingType = "mine"
	BuildingFarm                BuildingType = "farm"
	BuildingConstructionFactory BuildingType = "construction-factory"
	BuildingSolarPanel          BuildingType = "solar-panel"
	BuildingShipyard            BuildingType = "shipyard"
	BuildingFuelCellCracker     BuildingType = "fuel-cell-cracker"
)

// SlotType distinguishes surface construction from orbital construction.
type SlotType string

const (
	SlotGround  SlotType = "ground"
	SlotOrbital SlotType = "orbital"
)

var (
	ErrSlotTypeMismatch    = errors.New("building cannot occupy that slot type")
	ErrNoSuchSlotType      = errors.New("body has no slots of that type")
	ErrSlotIndexOutOfRange = errors.New("slot index out of range")
	ErrSlotOccupied        = errors.New("slot already occupied")
)

// SlotType reports which slot class the building occupies.
func (b BuildingType) SlotType() SlotType {
	switch b {
	case BuildingSolarPanel, BuildingShipyard, BuildingFuelCellCracker:
		return SlotOrbital
	default:
		return SlotGround
	}
}

// Cost returns the resource price of one unit.
func (b BuildingType) Cost() map[ResourceType]float64 {
	switch b {
	case BuildingMine:
		return map[ResourceType]float64{ResourceMetal: 50}
	case BuildingFarm:
		return map[ResourceType]float64{ResourceMetal: 20, ResourceOrganics: 50}
	case BuildingConstructionFactory:
		return map[ResourceType]float64{ResourceMetal: 150}
	case BuildingSolarPanel:
		return map[ResourceType]float64{ResourceMetal: 10, ResourceNobles: 20}
	case BuildingShipyard:
		return map[ResourceType]float64{ResourceMetal: 200}
	case BuildingFuelCellCracker:
		return map[ResourceType]float64{ResourceMetal: 100, ResourceNobles: 75}
	default:
		return nil
	}
}

// EntityBuildings holds the fixed construction slots of one body. A nil slice
// means the body has no slots of that class at all, which validates
// differently from a full one.
type EntityBuildings struct {
	Ground  []BuildingType
	Orbital []BuildingType
}

// NewEntityBuildings allocates empty slot arrays sized for the body class.
func NewEntityBuildings(ground, orbital int) *EntityBuildings {
	eb := &EntityBuildings{}
	if ground > 0 {
		eb.Ground = make([]BuildingType, ground)
	}
	if orbital > 0 {
		eb.Orbital = make([]BuildingType, orbital)
	}
	return eb
}

// slotsForClass returns the slot array backing the given class, or nil.
func (eb *EntityBuildings) slotsForClass(slot SlotType) []BuildingType {
	if eb == nil {
		return nil
	}
	switch slot {
	case SlotGround:
		return eb.Ground
	case SlotOrbital:
		return eb.Orbital
	default:
		return nil
	}
}

// Slots returns a copy of the slot array for the given class.
func (eb *EntityBuildings) Slots(slot SlotType) []BuildingType {
	src := eb.slotsForClass(slot)
	if src == nil {
		return nil
	}
	return append([]BuildingType(nil), src...)
}

// FindFirstEmptySlot returns the lowest vacant index in the given class.
func (eb *EntityBuildings) FindFirstEmptySlot(slot SlotType) (int, bool) {
	for i, b := range eb.slotsForClass(slot) {
		if b == BuildingNone {
			return i, true
		}
	}
	return 0, false
}

// FreeSlots counts vacant slots in the given class.
func (eb *EntityBuildings) FreeSlots(slot SlotType) int {
	free := 0
	for _, b := range eb.slotsForClass(slot) {
		if b == BuildingNone {
			free++
		}
	}
	return free
}

// Build places building into the indexed slot. Checks run in a fixed order so
// callers always see the most fundamental failure: slot-class compatibility,
// then slot-class existence, then bounds, then vacancy. On error nothing
// changes.
func (eb *EntityBuildings) Build(slot SlotType, index int, building BuildingType) error {
	if building == BuildingNone || building.SlotType() != slot {
		return ErrSlotTypeMismatch
	}
	slots := eb.slotsForClass(slot)
	if slots == nil {
		return ErrNoSuchSlotType
	}
	if index < 0 || index >= len(slots) {
		return ErrSlotIndexOutOfRange
	}
	if slots[index] != BuildingNone {
		return ErrSlotOccupied
	}
	slots[index] = building
	return nil
}

// Count tallies occurrences of building across both slot classes.
func (eb *EntityBuildings) Count(building BuildingType) int {
	if eb == nil || building == BuildingNone {
		return 0
	}
	n := 0
	for _, b := range eb.Ground {
		if b == building {
			n++
		}
	}
	for _, b := range eb.Orbital {
		if b == building {
			n++
		}
	}
	return n
}

// Has reports whether at least one instance of building exists on the body.
func (eb *EntityBuildings) Has(building BuildingType) bool {
	return eb.Count(building) > 0
}

// slotCountsForType returns the ground and orbital slot counts a freshly
// spawned body of the given class carries.
func slotCountsForType(entityType EntityType) (ground, orbital int) {
	switch entityType {
	case EntityTypePlanet:
		return 4, 4
	case EntityTypeMoon:
		return 2, 2
	case EntityTypeGasGiant:
		return 0, 8
	default:
		return 0, 0
	}
}
