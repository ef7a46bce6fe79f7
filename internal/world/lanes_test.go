package world

import (
	"fmt"
	"testing"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	off := false
	w, err := New(Config{Seed: "lanes-test", SpawnSolSystem: &off, CiviliansEnabled: &off}, Deps{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return w
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name           string
		p1, q1, p2, q2 Point
		want           bool
	}{
		{"proper crossing", Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}, true},
		{"disjoint parallel", Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}, false},
		{"collinear overlap", Point{0, 0}, Point{10, 0}, Point{5, 0}, Point{15, 0}, true},
		{"collinear disjoint", Point{0, 0}, Point{4, 0}, Point{6, 0}, Point{10, 0}, false},
		{"touching endpoint", Point{0, 0}, Point{10, 0}, Point{10, 0}, Point{20, 10}, true},
		{"far apart", Point{0, 0}, Point{1, 1}, Point{50, 50}, Point{60, 50}, false},
	}
	for _, tc := range cases {
		if got := segmentsIntersect(tc.p1, tc.q1, tc.p2, tc.q2); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func spawnTestStars(w *World, n int) []EntityID {
	rng := w.SubsystemRNG("lane-layout")
	ids := make([]EntityID, 0, n)
	positions := make([]PointF64, 0, n)
	for len(ids) < n {
		pos := PointF64{
			X: RandomRange(rng, -300, 300),
			Y: RandomRange(rng, -300, 300),
		}
		tooClose := false
		for _, other := range positions {
			if pos.DistanceTo(other) < 40 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		positions = append(positions, pos)
		ids = append(ids, w.SpawnStar(fmt.Sprintf("S%d", len(ids)), pos.Rounded()))
	}
	return ids
}

func TestGenerateStarLanes_MinimumDegree(t *testing.T) {
	w := newTestWorld(t)
	stars := spawnTestStars(w, 20)

	w.GenerateStarLanes()

	degrees := make(map[EntityID]int)
	for _, lane := range w.Lanes() {
		degrees[lane.A]++
		degrees[lane.B]++
	}
	for _, star := range stars {
		if degrees[star] < laneMinimumDegree {
			t.Fatalf("star %d has degree %d", star, degrees[star])
		}
	}
}

func TestGenerateStarLanes_NoCrossings(t *testing.T) {
	w := newTestWorld(t)
	spawnTestStars(w, 20)

	w.GenerateStarLanes()

	pos := func(id EntityID) Point {
		p, ok := w.Location(id)
		if !ok {
			t.Fatalf("star %d has no position", id)
		}
		return p
	}
	lanes := w.Lanes()
	for i := 0; i < len(lanes); i++ {
		for j := i + 1; j < len(lanes); j++ {
			a, b := lanes[i], lanes[j]
			if a.A == b.A || a.A == b.B || a.B == b.A || a.B == b.B {
				continue
			}
			if segmentsIntersect(pos(a.A), pos(a.B), pos(b.A), pos(b.B)) {
				t.Fatalf("lanes %+v and %+v cross", a, b)
			}
		}
	}
}

func TestGenerateStarLanes_HubDegreeCanExceedTarget(t *testing.T) {
	w := newTestWorld(t)
	// Five stars ringing a central one, each closer to the center than to any
	// ring neighbor. Every ring star links the hub, pushing it past four.
	hub := w.SpawnStar("HUB", Point{})
	w.SpawnStar("S0", Point{X: 100, Y: 0})
	w.SpawnStar("S1", Point{X: 31, Y: 96})
	w.SpawnStar("S2", Point{X: -83, Y: 60})
	w.SpawnStar("S3", Point{X: -83, Y: -61})
	w.SpawnStar("S4", Point{X: 32, Y: -99})

	w.GenerateStarLanes()

	degree := 0
	for _, lane := range w.Lanes() {
		if lane.A == hub || lane.B == hub {
			degree++
		}
	}
	if degree < 5 {
		t.Fatalf("central star should link every ring star, degree %d", degree)
	}
}

func TestGenerateStarLanes_CanonicalAndUnique(t *testing.T) {
	w := newTestWorld(t)
	spawnTestStars(w, 12)

	w.GenerateStarLanes()

	seen := make(map[Lane]struct{})
	for _, lane := range w.Lanes() {
		if lane.A >= lane.B {
			t.Fatalf("lane not canonical: %+v", lane)
		}
		if _, dup := seen[lane]; dup {
			t.Fatalf("duplicate lane: %+v", lane)
		}
		seen[lane] = struct{}{}
	}
}

func TestGenerateStarLanes_TinyGalaxies(t *testing.T) {
	w := newTestWorld(t)
	w.GenerateStarLanes()
	if len(w.Lanes()) != 0 {
		t.Fatalf("empty galaxy grew lanes: %+v", w.Lanes())
	}

	w.SpawnStar("A", Point{X: 0, Y: 0})
	w.GenerateStarLanes()
	if len(w.Lanes()) != 0 {
		t.Fatalf("single star grew lanes: %+v", w.Lanes())
	}

	w.SpawnStar("B", Point{X: 100, Y: 0})
	w.GenerateStarLanes()
	if len(w.Lanes()) != 1 {
		t.Fatalf("two stars should share exactly one lane, got %+v", w.Lanes())
	}
}

func TestGenerateStarLanes_IsDeterministic(t *testing.T) {
	build := func() []Lane {
		w := newTestWorld(t)
		spawnTestStars(w, 16)
		w.GenerateStarLanes()
		return w.Lanes()
	}
	a := build()
	b := build()
	if len(a) != len(b) {
		t.Fatalf("lane counts diverged: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("lane %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}
