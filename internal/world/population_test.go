package world

import (
	"math"
	"testing"
)

func TestPopulationGrowth_CadenceIndependent(t *testing.T) {
	w := newTestWorld(t)
	planet := spawnTestColony(t, w)
	data, _ := w.Body(planet)
	data.Population = 100

	other := newTestWorld(t)
	otherPlanet := spawnTestColony(t, other)
	otherData, _ := other.Body(otherPlanet)
	otherData.Population = 100

	// One simulated year in a single step versus daily steps.
	w.advancePopulation(secondsPerYear)
	for i := 0; i < int(secondsPerYear); i++ {
		other.advancePopulation(1)
	}

	want := 100 * (1 + populationGrowthPerYear)
	if math.Abs(data.Population-want) > 1e-6 {
		t.Fatalf("single-step growth wrong: %v want %v", data.Population, want)
	}
	if math.Abs(data.Population-otherData.Population) > 1e-6 {
		t.Fatalf("growth depends on cadence: %v vs %v", data.Population, otherData.Population)
	}
}

func TestPopulationGrowth_SkipsEmptyBodies(t *testing.T) {
	w := newTestWorld(t)
	star := w.SpawnStar("A", Point{})
	giant := w.SpawnGasGiant("A g", star, 40, 0, 0.05)
	data, _ := w.Body(giant)

	w.advancePopulation(secondsPerYear)
	if data.Population != 0 {
		t.Fatalf("empty body grew population: %v", data.Population)
	}
}
