package world

import (
	"math/rand"

	"orbit-and-ore/server/logging"
)

// RNGFactory produces deterministic RNG instances for world subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand

// Deps bundles runtime dependencies injected into a World instance.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
}

// World owns every piece of simulation state. It is not safe for concurrent
// use; the host serializes Update and all mutation through one goroutine.
//
// Entity attributes live in sparse maps keyed by EntityID. An entity only has
// the attributes something registered for it, so absence in a map is
// meaningful and never an error by itself.
type World struct {
	config Config
	seed   string

	publisher  logging.Publisher
	rngFactory RNGFactory
	rng        *rand.Rand

	nextEntityID EntityID
	entities     []EntityID
	names        map[EntityID]string
	types        map[EntityID]EntityType
	glyphs       map[EntityID]rune
	colors       map[EntityID]Color
	controlled   map[EntityID]struct{}

	locations *LocationSystem
	resources *ResourceSystem
	bodies    map[EntityID]*CelestialBodyData
	buildings map[EntityID]*EntityBuildings
	ships     map[EntityID]ShipInfo
	cargo     map[EntityID]*Cargo
	civilians map[EntityID]*CivilianShipAI

	moveOrders map[EntityID]PointF64
	lanes      []Lane

	commands []Command

	currentTick uint64
}

// New constructs an empty world with normalized configuration and seeded RNG.
// Call PopulateGalaxy to fill it.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}

	w := &World{
		config:     normalized,
		seed:       normalized.Seed,
		publisher:  publisher,
		rngFactory: factory,
		rng:        factory(normalized.Seed, "world"),
		names:      make(map[EntityID]string),
		types:      make(map[EntityID]EntityType),
		glyphs:     make(map[EntityID]rune),
		colors:     make(map[EntityID]Color),
		controlled: make(map[EntityID]struct{}),
		locations:  NewLocationSystem(),
		resources:  NewResourceSystem(),
		bodies:     make(map[EntityID]*CelestialBodyData),
		buildings:  make(map[EntityID]*EntityBuildings),
		ships:      make(map[EntityID]ShipInfo),
		cargo:      make(map[EntityID]*Cargo),
		civilians:  make(map[EntityID]*CivilianShipAI),
		moveOrders: make(map[EntityID]PointF64),
	}
	return w, nil
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// Seed reports the deterministic seed applied to the world RNG hierarchy.
func (w *World) Seed() string {
	if w == nil {
		return ""
	}
	return w.seed
}

// RNG exposes the root RNG instance seeded for the world.
func (w *World) RNG() *rand.Rand {
	if w == nil {
		return nil
	}
	if w.rng == nil {
		w.rng = w.ensureFactory()(w.seed, "world")
	}
	return w.rng
}

// SubsystemRNG returns a deterministic RNG derived from the world seed.
func (w *World) SubsystemRNG(label string) *rand.Rand {
	if w == nil {
		return NewDeterministicRNG(DefaultSeed, label)
	}
	seed := w.seed
	if seed == "" {
		seed = DefaultSeed
	}
	return w.ensureFactory()(seed, label)
}

func (w *World) ensureFactory() RNGFactory {
	if w == nil || w.rngFactory == nil {
		return NewDeterministicRNG
	}
	return w.rngFactory
}

// Tick reports the tick number of the last Update call.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.currentTick
}

// Update advances the simulation by dt seconds. Phases run in a fixed order
// every tick: queued commands first, so a command issued last tick acts on
// last tick's observed state; then orbital motion, production, population,
// ship movement and the civilian economy. Commands the civilian AI emits here
// are processed at the top of the next tick.
func (w *World) Update(dt float64, tick uint64) {
	if w == nil || dt <= 0 {
		return
	}
	w.currentTick = tick

	w.processCommands()
	w.locations.Update(dt)
	w.resources.Update(dt, w.types, w.bodies, w.buildings)
	w.advancePopulation(dt)
	w.advanceShipMovement(dt)
	if w.config.CiviliansActive() {
		w.advanceCivilianEconomy(dt)
		w.advanceCivilianShips(dt)
	}
}

// Resources returns the global player resource tallies.
func (w *World) Resources() ResourceTally {
	if w == nil || w.resources == nil {
		return ResourceTally{}
	}
	return w.resources.Tally()
}

// ResourceRates projects current per-second production for display.
func (w *World) ResourceRates() ResourceRates {
	if w == nil || w.resources == nil {
		return ResourceRates{}
	}
	return w.resources.CalculateRates(w.types, w.bodies, w.buildings)
}
