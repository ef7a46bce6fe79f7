package world

import (
	"context"

	"orbit-and-ore/server/logging/lifecycle"
)

const (
	frigateSpeed    = 5.0
	miningShipSpeed = 2.0
	miningShipHold  = 100.0
)

var (
	starPalette = []Color{
		{R: 255, G: 220, B: 120},
		{R: 255, G: 180, B: 80},
		{R: 240, G: 240, B: 255},
		{R: 255, G: 120, B: 90},
	}
	planetPalette = []Color{
		{R: 90, G: 160, B: 220},
		{R: 110, G: 190, B: 120},
		{R: 200, G: 150, B: 100},
		{R: 170, G: 120, B: 200},
	}
	moonPalette = []Color{
		{R: 180, G: 180, B: 180},
		{R: 140, G: 140, B: 150},
	}
	gasGiantPalette = []Color{
		{R: 220, G: 180, B: 130},
		{R: 180, G: 140, B: 220},
		{R: 130, G: 190, B: 200},
	}
)

var (
	rockyResources    = []ResourceType{ResourceMetal, ResourceNobles, ResourceOrganics}
	gasGiantResources = []ResourceType{ResourceOrganics, ResourceNobles}
)

// Per-head consumption in units per second, recorded as the body's demand
// profile at spawn time.
var defaultDemands = map[ResourceType]float64{
	ResourceMetal:    0.001,
	ResourceOrganics: 0.0005,
}

func pickColor(w *World, palette []Color) Color {
	return palette[w.RNG().Intn(len(palette))]
}

// SpawnStar registers a star at a fixed position and returns its id. Stars
// carry body data (so trade can land there) but no construction slots.
func (w *World) SpawnStar(name string, pos Point) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity(name, EntityTypeStar, '*', pickColor(w, starPalette))
	w.locations.AddStatic(id, pos)
	w.bodies[id] = NewCelestialBodyData()
	return id
}

// SpawnPlanet registers a planet orbiting anchor. Yields are rolled per
// resource; population starts at one unit so mines produce from the first
// interval.
func (w *World) SpawnPlanet(name string, anchor EntityID, radius, angle, angularVelocity float64) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity(name, EntityTypePlanet, 'p', pickColor(w, planetPalette))
	w.locations.AddOrbital(id, anchor, radius, angle, angularVelocity)

	data := NewCelestialBodyData()
	data.Population = 1.0
	for _, res := range rockyResources {
		data.Yields[res] = RandomRange(w.RNG(), 50, 150)
	}
	for res, rate := range defaultDemands {
		data.Demands[res] = rate
	}
	w.bodies[id] = data

	ground, orbital := slotCountsForType(EntityTypePlanet)
	w.buildings[id] = NewEntityBuildings(ground, orbital)
	return id
}

// SpawnMoon registers a moon orbiting anchor, usually a planet.
func (w *World) SpawnMoon(name string, anchor EntityID, radius, angle, angularVelocity float64) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity(name, EntityTypeMoon, 'm', pickColor(w, moonPalette))
	w.locations.AddOrbital(id, anchor, radius, angle, angularVelocity)

	data := NewCelestialBodyData()
	data.Population = 0.25
	for _, res := range rockyResources {
		data.Yields[res] = RandomRange(w.RNG(), 20, 80)
	}
	for res, rate := range defaultDemands {
		data.Demands[res] = rate
	}
	w.bodies[id] = data

	ground, orbital := slotCountsForType(EntityTypeMoon)
	w.buildings[id] = NewEntityBuildings(ground, orbital)
	return id
}

// SpawnGasGiant registers a gas giant orbiting anchor. No surface, no
// population; all slots are orbital.
func (w *World) SpawnGasGiant(name string, anchor EntityID, radius, angle, angularVelocity float64) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity(name, EntityTypeGasGiant, 'g', pickColor(w, gasGiantPalette))
	w.locations.AddOrbital(id, anchor, radius, angle, angularVelocity)

	data := NewCelestialBodyData()
	for _, res := range gasGiantResources {
		data.Yields[res] = RandomRange(w.RNG(), 80, 200)
	}
	w.bodies[id] = data

	ground, orbital := slotCountsForType(EntityTypeGasGiant)
	w.buildings[id] = NewEntityBuildings(ground, orbital)
	return id
}

// SpawnFrigate registers a player-controllable warship at pos.
func (w *World) SpawnFrigate(pos PointF64) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity("Frigate", EntityTypeShip, 'f', Color{R: 128, G: 128, B: 128})
	w.locations.AddMobile(id, pos)
	w.ships[id] = ShipInfo{Type: ShipTypeFrigate, Speed: frigateSpeed}
	w.controlled[id] = struct{}{}

	lifecycle.ShipSpawned(context.Background(), w.publisher, w.currentTick, w.entityRef(id), lifecycle.ShipSpawnedPayload{
		ShipType: string(ShipTypeFrigate),
		X:        pos.X,
		Y:        pos.Y,
	}, nil)
	return id
}

// SpawnMiningShip registers an autonomous hauler homed at homeBase. Mining
// ships are never player controlled; the civilian AI owns them from the first
// tick.
func (w *World) SpawnMiningShip(pos PointF64, homeBase EntityID) EntityID {
	if w == nil {
		return 0
	}
	id := w.allocateEntity("Mining Ship", EntityTypeShip, 'm', Color{R: 160, G: 160, B: 160})
	w.locations.AddMobile(id, pos)
	w.ships[id] = ShipInfo{Type: ShipTypeMiningShip, Speed: miningShipSpeed}
	w.cargo[id] = NewCargo(miningShipHold)
	w.civilians[id] = &CivilianShipAI{HomeBase: homeBase, Phase: CivilianIdle}

	lifecycle.ShipSpawned(context.Background(), w.publisher, w.currentTick, w.entityRef(id), lifecycle.ShipSpawnedPayload{
		ShipType: string(ShipTypeMiningShip),
		X:        pos.X,
		Y:        pos.Y,
	}, nil)
	return id
}
