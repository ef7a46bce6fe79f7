package world

import "sort"

// resourceInterval is how much simulated time must accumulate before a
// production pulse fires. Production is computed per whole interval so two
// half-interval updates and one full-interval update land identical deltas.
const resourceInterval = 1.0

// energyPerSolarPanel is the per-second global energy output of one panel.
const energyPerSolarPanel = 1.0

// ResourceTally is the global player-visible resource pool.
type ResourceTally struct {
	Energy   float64 `json:"energy"`
	Metal    float64 `json:"metal"`
	Nobles   float64 `json:"nobles"`
	Organics float64 `json:"organics"`
}

// ResourceRates is a per-second projection of current production, for display
// only.
type ResourceRates struct {
	Energy     float64                  `json:"energy"`
	Production map[ResourceType]float64 `json:"production"`
}

// ResourceSystem accrues production on a fixed interval. Fractional update
// time carries over in the accumulator, so production depends only on total
// elapsed simulated time and never on tick cadence.
type ResourceSystem struct {
	tally       ResourceTally
	accumulator float64
}

// NewResourceSystem returns a system with empty pools.
func NewResourceSystem() *ResourceSystem {
	return &ResourceSystem{}
}

// Tally returns the global resource pool.
func (rs *ResourceSystem) Tally() ResourceTally {
	if rs == nil {
		return ResourceTally{}
	}
	return rs.tally
}

// AddEnergy credits energy to the global pool.
func (rs *ResourceSystem) AddEnergy(amount float64) {
	if rs == nil {
		return
	}
	rs.tally.Energy += amount
}

// Update advances the accumulator by dt seconds and applies production for
// every whole interval that elapsed. Solar panels feed the global energy
// pool; mines on planet-class bodies feed that body's local stocks at
// population × mines × yield per second. Bodies are visited in id order so
// the global energy sum accumulates identically across seeded runs.
func (rs *ResourceSystem) Update(dt float64, types map[EntityID]EntityType, bodies map[EntityID]*CelestialBodyData, buildings map[EntityID]*EntityBuildings) {
	if rs == nil || dt <= 0 {
		return
	}
	rs.accumulator += dt
	if rs.accumulator < resourceInterval {
		return
	}
	intervals := int(rs.accumulator / resourceInterval)
	elapsed := float64(intervals) * resourceInterval
	rs.accumulator -= elapsed

	for _, id := range sortedBuildingIDs(buildings) {
		eb := buildings[id]
		if panels := eb.Count(BuildingSolarPanel); panels > 0 {
			rs.tally.Energy += float64(panels) * energyPerSolarPanel * elapsed
		}
		if types[id] != EntityTypePlanet {
			continue
		}
		mines := eb.Count(BuildingMine)
		if mines == 0 {
			continue
		}
		data := bodies[id]
		if data == nil {
			continue
		}
		for res, yield := range data.Yields {
			data.Stocks[res] += data.Population * float64(mines) * yield * elapsed
		}
	}
}

// sortedBuildingIDs returns the keys of buildings in ascending id order,
// which is spawn order since ids are monotonic.
func sortedBuildingIDs(buildings map[EntityID]*EntityBuildings) []EntityID {
	ids := make([]EntityID, 0, len(buildings))
	for id := range buildings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CalculateRates projects current per-second production without mutating any
// state or consulting the accumulator.
func (rs *ResourceSystem) CalculateRates(types map[EntityID]EntityType, bodies map[EntityID]*CelestialBodyData, buildings map[EntityID]*EntityBuildings) ResourceRates {
	rates := ResourceRates{Production: make(map[ResourceType]float64)}
	for _, id := range sortedBuildingIDs(buildings) {
		eb := buildings[id]
		rates.Energy += float64(eb.Count(BuildingSolarPanel)) * energyPerSolarPanel
		if types[id] != EntityTypePlanet {
			continue
		}
		mines := eb.Count(BuildingMine)
		if mines == 0 {
			continue
		}
		data := bodies[id]
		if data == nil {
			continue
		}
		for res, yield := range data.Yields {
			rates.Production[res] += data.Population * float64(mines) * yield
		}
	}
	return rates
}
