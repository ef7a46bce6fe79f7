package world

import (
	"context"
	"math"
	"math/rand"

	"orbit-and-ore/server/logging/lifecycle"
)

const (
	minStarSeparation  = 30.0
	starPlacementTries = 32
)

// PopulateGalaxy fills an empty world: stars scattered across the disc, each
// with a rolled retinue of planets, moons and gas giants, the hand-authored
// starting system, and the lane network on top. Safe to call exactly once,
// right after New.
func (w *World) PopulateGalaxy() {
	if w == nil {
		return
	}
	gal := w.SubsystemRNG("galaxy")

	var starPositions []PointF64
	placeStar := func(pos PointF64, name string) EntityID {
		starPositions = append(starPositions, pos)
		return w.SpawnStar(name, pos.Rounded())
	}

	if w.config.SolSystemEnabled() {
		w.spawnSolSystem(placeStar)
	}

	names := make(map[string]struct{})
	for len(starPositions) < w.config.StarCount {
		pos, ok := w.rollStarPosition(gal, starPositions)
		if !ok {
			break
		}
		name := rollStarName(gal, names)
		star := placeStar(pos, name)
		w.spawnStarSystem(gal, star)
	}

	w.GenerateStarLanes()

	lifecycle.GalaxyPopulated(context.Background(), w.publisher, w.currentTick, lifecycle.GalaxyPopulatedPayload{
		Stars:    len(starPositions),
		Entities: len(w.entities),
		Seed:     w.seed,
	}, nil)
}

// rollStarPosition samples the galactic disc until it finds a spot clear of
// every placed star. Gives up after a bounded number of tries so a crowded
// config cannot loop forever.
func (w *World) rollStarPosition(gal *rand.Rand, placed []PointF64) (PointF64, bool) {
	for try := 0; try < starPlacementTries; try++ {
		angle := RandomAngle(gal)
		distance := w.config.GalaxyRadius * math.Sqrt(RandomFloat(gal))
		pos := PointF64{X: distance * math.Cos(angle), Y: distance * math.Sin(angle)}
		clear := true
		for _, other := range placed {
			if pos.DistanceTo(other) < minStarSeparation {
				clear = false
				break
			}
		}
		if clear {
			return pos, true
		}
	}
	return PointF64{}, false
}

// rollStarName produces a unique four-character designation: two letters and
// two digits.
func rollStarName(gal *rand.Rand, taken map[string]struct{}) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const digits = "0123456789"
	for {
		name := string([]byte{
			letters[gal.Intn(len(letters))],
			letters[gal.Intn(len(letters))],
			digits[gal.Intn(len(digits))],
			digits[gal.Intn(len(digits))],
		})
		if _, exists := taken[name]; !exists {
			taken[name] = struct{}{}
			return name
		}
	}
}

// spawnStarSystem rolls the planetary retinue of one star. Orbit radii grow
// outward so bodies never share a shell; outer orbits roll a chance of a gas
// giant instead of a planet, and rocky planets occasionally get a moon.
func (w *World) spawnStarSystem(gal *rand.Rand, star EntityID) {
	planets := gal.Intn(w.config.MaxPlanetsPerStar + 1)
	radius := RandomRange(gal, 8, 12)
	name, _ := w.EntityName(star)
	for p := 0; p < planets; p++ {
		angle := RandomAngle(gal)
		angularVelocity := RandomRange(gal, 0.05, 0.2) / (radius / 10)
		if radius > 25 && RandomFloat(gal) < 0.25 {
			w.SpawnGasGiant(name+" gas giant", star, radius, angle, angularVelocity)
		} else {
			planet := w.SpawnPlanet(name+" planet", star, radius, angle, angularVelocity)
			if RandomFloat(gal) < 0.2 {
				moonRadius := RandomRange(gal, 3, 5)
				w.SpawnMoon(name+" moon", planet, moonRadius, RandomAngle(gal), RandomRange(gal, 0.6, 1.4))
			}
		}
		radius += RandomRange(gal, 5, 10)
	}
}

// spawnSolSystem seeds the fixed starting system: Sol at the galactic
// center, Earth with a working mine and solar panel, and the Moon. Earth is
// handed to the player along with a frigate parked nearby.
func (w *World) spawnSolSystem(placeStar func(PointF64, string) EntityID) {
	sol := placeStar(PointF64{}, "Sol")
	earth := w.SpawnPlanet("Earth", sol, 16, 0, 2*math.Pi/60)
	w.SpawnMoon("Moon", earth, 4, 0, 2*math.Pi/5)

	if eb, ok := w.buildings[earth]; ok {
		eb.Build(SlotGround, 0, BuildingMine)
		eb.Build(SlotOrbital, 0, BuildingSolarPanel)
	}
	if data, ok := w.bodies[earth]; ok {
		data.Stocks[ResourceMetal] = 100
		data.Stocks[ResourceOrganics] = 50
	}
	w.SetPlayerControlled(earth, true)
	w.SpawnFrigate(PointF64{X: 18, Y: 0})
}
