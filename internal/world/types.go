package world

// EntityID identifies a simulated entity. IDs are allocated monotonically and
// never reused, so a stale reference can be detected instead of silently
// resolving to a newer entity.
type EntityID uint32

// EntityType classifies an entity for rendering and simulation rules.
type EntityType string

const (
	EntityTypeStar     EntityType = "star"
	EntityTypePlanet   EntityType = "planet"
	EntityTypeMoon     EntityType = "moon"
	EntityTypeGasGiant EntityType = "gas-giant"
	EntityTypeShip     EntityType = "ship"
)

// Color is an RGB triple used by clients when drawing entity glyphs.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ResourceType enumerates the tradable resources of the galaxy.
type ResourceType string

const (
	ResourceEnergy   ResourceType = "energy"
	ResourceMetal    ResourceType = "metal"
	ResourceNobles   ResourceType = "nobles"
	ResourceOrganics ResourceType = "organics"
)

// ResourceTypes lists every resource in canonical order. Economy code walks
// this slice instead of ranging resource maps, so float accumulation happens
// in the same order every run.
var ResourceTypes = [...]ResourceType{ResourceEnergy, ResourceMetal, ResourceNobles, ResourceOrganics}

// BasePrice reports the credit value of one unit when sold at a body.
func (r ResourceType) BasePrice() float64 {
	switch r {
	case ResourceMetal:
		return 1.0
	case ResourceNobles:
		return 4.0
	case ResourceOrganics:
		return 1.5
	case ResourceEnergy:
		return 0.5
	default:
		return 0
	}
}

// CelestialBodyData carries the economic state of a star, planet, moon or gas
// giant. Yields are fixed at spawn time; stocks and credits move every tick.
type CelestialBodyData struct {
	Population float64
	Credits    float64
	Yields     map[ResourceType]float64
	Stocks     map[ResourceType]float64
	Demands    map[ResourceType]float64
}

// NewCelestialBodyData returns body data with allocated maps and zeroed
// counters.
func NewCelestialBodyData() *CelestialBodyData {
	return &CelestialBodyData{
		Yields:  make(map[ResourceType]float64),
		Stocks:  make(map[ResourceType]float64),
		Demands: make(map[ResourceType]float64),
	}
}

// ShipType selects the hull spawned by a shipyard.
type ShipType string

const (
	ShipTypeFrigate    ShipType = "frigate"
	ShipTypeMiningShip ShipType = "mining-ship"
)

// ShipInfo holds the per-ship simulation attributes that are not positional.
type ShipInfo struct {
	Type  ShipType
	Speed float64
}

// Cargo is a capacity-limited hold. The sum of Contents never exceeds
// Capacity; Load is kept equal to that sum so callers can test fullness
// without walking the map.
type Cargo struct {
	Capacity float64
	Load     float64
	Contents map[ResourceType]float64
}

// NewCargo returns an empty hold with the given capacity.
func NewCargo(capacity float64) *Cargo {
	if capacity < 0 {
		capacity = 0
	}
	return &Cargo{Capacity: capacity, Contents: make(map[ResourceType]float64)}
}

// Add stores up to amount units of resource, truncating at capacity, and
// returns the leftover that did not fit.
func (c *Cargo) Add(resource ResourceType, amount float64) float64 {
	if c == nil || amount <= 0 {
		return amount
	}
	free := c.Capacity - c.Load
	if free <= 0 {
		return amount
	}
	stored := amount
	if stored > free {
		stored = free
	}
	if c.Contents == nil {
		c.Contents = make(map[ResourceType]float64, 1)
	}
	c.Contents[resource] += stored
	c.Load += stored
	return amount - stored
}

// IsFull reports whether the hold has no remaining capacity.
func (c *Cargo) IsFull() bool {
	if c == nil {
		return false
	}
	return c.Load >= c.Capacity
}

// Clear empties the hold.
func (c *Cargo) Clear() {
	if c == nil {
		return
	}
	c.Load = 0
	for res := range c.Contents {
		delete(c.Contents, res)
	}
}

// CivilianPhase names a state of the mining-ship behavior loop.
type CivilianPhase string

const (
	CivilianIdle         CivilianPhase = "idle"
	CivilianMovingToMine CivilianPhase = "moving-to-mine"
	CivilianMining       CivilianPhase = "mining"
	CivilianReturning    CivilianPhase = "returning"
)

// CivilianShipAI tracks one autonomous mining ship. Target is meaningful in
// the moving-to-mine and mining phases; MineTime accumulates seconds spent at
// the current target.
type CivilianShipAI struct {
	HomeBase EntityID
	Phase    CivilianPhase
	Target   EntityID
	MineTime float64
}
