package world

import (
	"context"
	"math"
	"sort"

	"orbit-and-ore/server/logging/lifecycle"
)

const (
	laneTargetDegree  = 4
	laneMinimumDegree = 2
	lanePruneAngleDeg = 15.0
)

// Lane is a cosmetic connection between two stars. A and B are stored in
// canonical order (A < B) so the same pair can never appear twice.
type Lane struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func canonicalLane(a, b EntityID) Lane {
	if b < a {
		a, b = b, a
	}
	return Lane{A: a, B: b}
}

// Lanes returns the current star-lane network.
func (w *World) Lanes() []Lane {
	if w == nil {
		return nil
	}
	return append([]Lane(nil), w.lanes...)
}

// orientation classifies the turn p→q→r: 0 collinear, 1 clockwise,
// 2 counterclockwise. Integer math, so no epsilon games.
func orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val == 0:
		return 0
	case val > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether q lies on segment pr, assuming collinearity.
func onSegment(p, q, r Point) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// segmentsIntersect reports whether segments p1q1 and p2q2 cross, including
// collinear overlap.
func segmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// GenerateStarLanes rebuilds the lane network from the current star layout.
//
// Three passes: connect each star toward a target degree using its nearest
// neighbors while rejecting lanes that would cross an existing one; top up
// any star still under the minimum degree with the same non-crossing search;
// then prune near-parallel lanes leaving the same star, dropping the longer
// of any angularly-adjacent pair within the threshold as long as both of its
// endpoints stay at the minimum degree. No pass ever admits a crossing lane,
// so non-crossing holds over the whole output.
func (w *World) GenerateStarLanes() {
	if w == nil {
		return
	}
	w.lanes = nil

	var stars []EntityID
	for _, id := range w.entities {
		if w.types[id] == EntityTypeStar {
			stars = append(stars, id)
		}
	}
	if len(stars) < 2 {
		return
	}

	positions := make(map[EntityID]Point, len(stars))
	for _, id := range stars {
		if pos, ok := w.locations.Location(id); ok {
			positions[id] = pos
		}
	}

	laneSet := make(map[Lane]struct{})
	degrees := make(map[EntityID]int)
	var lanes []Lane

	// A candidate lane may share an endpoint with an existing lane without
	// counting as a crossing; lanes meet at stars all the time.
	crossesExisting := func(a, b EntityID) bool {
		pa, pb := positions[a], positions[b]
		for _, lane := range lanes {
			if lane.A == a || lane.A == b || lane.B == a || lane.B == b {
				continue
			}
			if segmentsIntersect(pa, pb, positions[lane.A], positions[lane.B]) {
				return true
			}
		}
		return false
	}

	addLane := func(a, b EntityID) {
		lane := canonicalLane(a, b)
		laneSet[lane] = struct{}{}
		lanes = append(lanes, lane)
		degrees[a]++
		degrees[b]++
	}

	neighborsByDistance := func(star EntityID) []EntityID {
		neighbors := make([]EntityID, 0, len(stars)-1)
		for _, other := range stars {
			if other != star {
				neighbors = append(neighbors, other)
			}
		}
		origin := positions[star]
		sort.Slice(neighbors, func(i, j int) bool {
			return squaredDistance(origin, positions[neighbors[i]]) < squaredDistance(origin, positions[neighbors[j]])
		})
		return neighbors
	}

	// Pass 1: nearest-neighbor connections until four lanes leave this star.
	// The cap is on lanes added for the current star only; a popular hub can
	// end up above the target through its neighbors' picks.
	for _, star := range stars {
		for _, neighbor := range neighborsByDistance(star) {
			if degrees[star] >= laneTargetDegree {
				break
			}
			if _, exists := laneSet[canonicalLane(star, neighbor)]; exists {
				continue
			}
			if crossesExisting(star, neighbor) {
				continue
			}
			addLane(star, neighbor)
		}
	}

	// Pass 2: top up stars still under the minimum degree with the same
	// non-crossing search, stopping when candidates run out.
	for _, star := range stars {
		if degrees[star] >= laneMinimumDegree {
			continue
		}
		for _, neighbor := range neighborsByDistance(star) {
			if degrees[star] >= laneMinimumDegree {
				break
			}
			if _, exists := laneSet[canonicalLane(star, neighbor)]; exists {
				continue
			}
			if crossesExisting(star, neighbor) {
				continue
			}
			addLane(star, neighbor)
		}
	}

	// Pass 3: sort each star's incident lanes by polar angle and compare only
	// angularly-adjacent pairs, pruning the longer lane of any pair closer
	// than the threshold. The scan restarts after every removal because a
	// removal changes angle adjacency and degree constraints for everything
	// else; it terminates once a full scan removes nothing.
	pruned := 0
	threshold := lanePruneAngleDeg * math.Pi / 180
	for {
		removed := false
	scan:
		for _, star := range stars {
			var local []Lane
			for _, lane := range lanes {
				if lane.A == star || lane.B == star {
					local = append(local, lane)
				}
			}
			if len(local) < 2 {
				continue
			}
			sort.Slice(local, func(i, j int) bool {
				return laneAngle(positions, star, local[i]) < laneAngle(positions, star, local[j])
			})
			pairs := len(local)
			if pairs == 2 {
				pairs = 1
			}
			for i := 0; i < pairs; i++ {
				a, b := local[i], local[(i+1)%len(local)]
				if angleBetween(positions, star, a, b) >= threshold {
					continue
				}
				longer := a
				if laneLength(positions, b) > laneLength(positions, a) {
					longer = b
				}
				if degrees[longer.A]-1 < laneMinimumDegree || degrees[longer.B]-1 < laneMinimumDegree {
					continue
				}
				for k, lane := range lanes {
					if lane == longer {
						lanes = append(lanes[:k], lanes[k+1:]...)
						break
					}
				}
				delete(laneSet, longer)
				degrees[longer.A]--
				degrees[longer.B]--
				pruned++
				removed = true
				break scan
			}
		}
		if !removed {
			break
		}
	}

	w.lanes = lanes
	lifecycle.LanesGenerated(context.Background(), w.publisher, w.currentTick, lifecycle.LanesGeneratedPayload{
		Lanes:  len(lanes),
		Pruned: pruned,
	}, nil)
}

func squaredDistance(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func laneLength(positions map[EntityID]Point, lane Lane) float64 {
	return math.Sqrt(float64(squaredDistance(positions[lane.A], positions[lane.B])))
}

// laneAngle is the polar angle of a lane's far end as seen from star.
func laneAngle(positions map[EntityID]Point, star EntityID, lane Lane) float64 {
	origin := positions[star]
	p := positions[laneFarEnd(lane, star)]
	return math.Atan2(float64(p.Y-origin.Y), float64(p.X-origin.X))
}

// angleBetween measures the separation of two lanes as seen from star.
func angleBetween(positions map[EntityID]Point, star EntityID, a, b Lane) float64 {
	diff := math.Abs(laneAngle(positions, star, a) - laneAngle(positions, star, b))
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

func laneFarEnd(lane Lane, star EntityID) EntityID {
	if lane.A == star {
		return lane.B
	}
	return lane.A
}
