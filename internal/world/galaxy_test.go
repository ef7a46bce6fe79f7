package world

import (
	"regexp"
	"testing"
)

func populatedWorld(t *testing.T, stars int) *World {
	t.Helper()
	w, err := New(Config{Seed: "galaxy-test", StarCount: stars}, Deps{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	w.PopulateGalaxy()
	return w
}

func TestPopulateGalaxy_StarCount(t *testing.T) {
	w := populatedWorld(t, 12)
	count := 0
	for _, id := range w.Entities() {
		if typ, _ := w.EntityType(id); typ == EntityTypeStar {
			count++
		}
	}
	if count != 12 {
		t.Fatalf("expected 12 stars, got %d", count)
	}
}

func TestPopulateGalaxy_SolSystem(t *testing.T) {
	w := populatedWorld(t, 8)

	var earth, moon EntityID
	var foundEarth, foundMoon, foundFrigate bool
	for _, id := range w.Entities() {
		name, _ := w.EntityName(id)
		switch name {
		case "Earth":
			earth, foundEarth = id, true
		case "Moon":
			moon, foundMoon = id, true
		case "Frigate":
			foundFrigate = true
		}
	}
	if !foundEarth || !foundMoon || !foundFrigate {
		t.Fatalf("sol system incomplete: earth=%v moon=%v frigate=%v", foundEarth, foundMoon, foundFrigate)
	}

	if !w.IsPlayerControlled(earth) {
		t.Fatalf("earth not player controlled")
	}
	eb, ok := w.Buildings(earth)
	if !ok || !eb.Has(BuildingMine) || !eb.Has(BuildingSolarPanel) {
		t.Fatalf("earth missing starter buildings")
	}

	params, ok := w.OrbitalParameters(moon)
	if !ok || params.Anchor != earth || params.Radius != 4 {
		t.Fatalf("moon orbit wrong: %+v", params)
	}
	earthParams, _ := w.OrbitalParameters(earth)
	if earthParams.Radius != 16 {
		t.Fatalf("earth orbit radius %v", earthParams.Radius)
	}
}

func TestPopulateGalaxy_SolSystemCanBeDisabled(t *testing.T) {
	off := false
	w, err := New(Config{Seed: "no-sol", StarCount: 6, SpawnSolSystem: &off}, Deps{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	w.PopulateGalaxy()
	for _, id := range w.Entities() {
		if name, _ := w.EntityName(id); name == "Sol" {
			t.Fatalf("sol spawned despite being disabled")
		}
	}
}

func TestPopulateGalaxy_LaneDegrees(t *testing.T) {
	w := populatedWorld(t, 16)
	degrees := make(map[EntityID]int)
	for _, lane := range w.Lanes() {
		degrees[lane.A]++
		degrees[lane.B]++
	}
	for _, id := range w.Entities() {
		if typ, _ := w.EntityType(id); typ != EntityTypeStar {
			continue
		}
		if degrees[id] < laneMinimumDegree {
			t.Fatalf("star %d degree %d below minimum", id, degrees[id])
		}
	}
}

func TestRollStarName(t *testing.T) {
	w := populatedWorld(t, 1)
	pattern := regexp.MustCompile(`^[A-Z]{2}[0-9]{2}$`)
	gal := w.SubsystemRNG("names")
	taken := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		name := rollStarName(gal, taken)
		if !pattern.MatchString(name) {
			t.Fatalf("bad star name %q", name)
		}
	}
	if len(taken) != 50 {
		t.Fatalf("names not unique: %d of 50", len(taken))
	}
}

func TestPopulateGalaxy_BodiesHaveYieldsAndSlots(t *testing.T) {
	w := populatedWorld(t, 16)
	for _, id := range w.Entities() {
		typ, _ := w.EntityType(id)
		switch typ {
		case EntityTypePlanet, EntityTypeMoon, EntityTypeGasGiant:
			data, ok := w.Body(id)
			if !ok || len(data.Yields) == 0 {
				t.Fatalf("body %d has no yields", id)
			}
			eb, ok := w.Buildings(id)
			if !ok {
				t.Fatalf("body %d has no slot arrays", id)
			}
			if typ == EntityTypeGasGiant && eb.Ground != nil {
				t.Fatalf("gas giant %d has ground slots", id)
			}
		}
	}
}
