package world

import (
	"log"
	"math"
)

// Point is an integer world coordinate, used for rendering and the lane
// geometry predicates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointF64 is the precise world coordinate every position resolves from.
type PointF64 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rounded snaps to the nearest render-grid cell.
func (p PointF64) Rounded() Point {
	return Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// DistanceTo returns the euclidean distance to other.
func (p PointF64) DistanceTo(other PointF64) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// OrbitalInfo is the public summary of an orbital registration.
type OrbitalInfo struct {
	Anchor EntityID
	Radius float64
}

// OrbitalParameters is the full orbital state of one entity.
type OrbitalParameters struct {
	Anchor          EntityID
	Radius          float64
	Angle           float64
	AngularVelocity float64
}

type locationKind int

const (
	locStatic locationKind = iota
	locOrbital
	locMobile
)

type locationEntry struct {
	kind            locationKind
	position        PointF64
	anchor          EntityID
	radius          float64
	angle           float64
	angularVelocity float64
}

// LocationSystem tracks where everything is. Entities register exactly one of
// three kinds: static (fixed), orbital (circular motion around an anchor) or
// mobile (free-moving, positioned by movement orders).
//
// Orbitals advance in registration order. Spawning always registers an anchor
// before its dependents, so by the time a moon resolves its planet the planet
// has already moved this tick.
type LocationSystem struct {
	entries map[EntityID]*locationEntry
	order   []EntityID
}

// NewLocationSystem returns an empty location registry.
func NewLocationSystem() *LocationSystem {
	return &LocationSystem{entries: make(map[EntityID]*locationEntry)}
}

// AddStatic registers a fixed-position entity.
func (ls *LocationSystem) AddStatic(id EntityID, pos Point) {
	if ls == nil {
		return
	}
	ls.register(id, &locationEntry{
		kind:     locStatic,
		position: PointF64{X: float64(pos.X), Y: float64(pos.Y)},
	})
}

// AddMobile registers a free-moving entity at pos.
func (ls *LocationSystem) AddMobile(id EntityID, pos PointF64) {
	if ls == nil {
		return
	}
	ls.register(id, &locationEntry{kind: locMobile, position: pos})
}

// AddOrbital registers an entity orbiting anchor at the given radius, starting
// angle (radians) and angular velocity (radians per second). The initial
// position resolves immediately against the anchor's current position.
func (ls *LocationSystem) AddOrbital(id, anchor EntityID, radius, angle, angularVelocity float64) {
	if ls == nil {
		return
	}
	entry := &locationEntry{
		kind:            locOrbital,
		anchor:          anchor,
		radius:          radius,
		angle:           angle,
		angularVelocity: angularVelocity,
	}
	entry.position = ls.resolveOrbit(id, entry)
	ls.register(id, entry)
}

func (ls *LocationSystem) register(id EntityID, entry *locationEntry) {
	if _, exists := ls.entries[id]; !exists {
		ls.order = append(ls.order, id)
	}
	ls.entries[id] = entry
}

// Remove drops an entity from the registry.
func (ls *LocationSystem) Remove(id EntityID) {
	if ls == nil {
		return
	}
	if _, exists := ls.entries[id]; !exists {
		return
	}
	delete(ls.entries, id)
	for i, other := range ls.order {
		if other == id {
			ls.order = append(ls.order[:i], ls.order[i+1:]...)
			break
		}
	}
}

// Update advances every orbital by dt seconds. Static and mobile entries are
// untouched.
func (ls *LocationSystem) Update(dt float64) {
	if ls == nil {
		return
	}
	for _, id := range ls.order {
		entry := ls.entries[id]
		if entry == nil || entry.kind != locOrbital {
			continue
		}
		entry.angle = math.Mod(entry.angle+entry.angularVelocity*dt, 2*math.Pi)
		entry.position = ls.resolveOrbit(id, entry)
	}
}

// resolveOrbit derives an orbital's absolute position from its anchor. A
// missing anchor is a spawn-order bug; the entity holds its last position so
// the rest of the tick can proceed.
func (ls *LocationSystem) resolveOrbit(id EntityID, entry *locationEntry) PointF64 {
	anchor, ok := ls.entries[entry.anchor]
	if !ok {
		log.Printf("location: entity %d orbits missing anchor %d", id, entry.anchor)
		return entry.position
	}
	return PointF64{
		X: anchor.position.X + entry.radius*math.Cos(entry.angle),
		Y: anchor.position.Y + entry.radius*math.Sin(entry.angle),
	}
}

// Location returns the entity's position on the integer render grid.
func (ls *LocationSystem) Location(id EntityID) (Point, bool) {
	pos, ok := ls.LocationF64(id)
	if !ok {
		return Point{}, false
	}
	return pos.Rounded(), true
}

// LocationF64 returns the entity's precise position.
func (ls *LocationSystem) LocationF64(id EntityID) (PointF64, bool) {
	if ls == nil {
		return PointF64{}, false
	}
	entry, ok := ls.entries[id]
	if !ok {
		return PointF64{}, false
	}
	return entry.position, true
}

// SetPositionF64 moves a mobile entity. It is a no-op for unknown ids and for
// static or orbital registrations; the returned flag reports whether the
// write landed.
func (ls *LocationSystem) SetPositionF64(id EntityID, pos PointF64) bool {
	if ls == nil {
		return false
	}
	entry, ok := ls.entries[id]
	if !ok || entry.kind != locMobile {
		return false
	}
	entry.position = pos
	return true
}

// OrbitalParameters returns the orbital state of id, if it is orbital.
func (ls *LocationSystem) OrbitalParameters(id EntityID) (OrbitalParameters, bool) {
	if ls == nil {
		return OrbitalParameters{}, false
	}
	entry, ok := ls.entries[id]
	if !ok || entry.kind != locOrbital {
		return OrbitalParameters{}, false
	}
	return OrbitalParameters{
		Anchor:          entry.anchor,
		Radius:          entry.radius,
		Angle:           entry.angle,
		AngularVelocity: entry.angularVelocity,
	}, true
}

// OrbitalEntry pairs an orbiting entity with its orbit summary.
type OrbitalEntry struct {
	ID   EntityID
	Info OrbitalInfo
}

// Orbitals returns a snapshot of every orbital registration in registration
// order.
func (ls *LocationSystem) Orbitals() []OrbitalEntry {
	if ls == nil {
		return nil
	}
	var out []OrbitalEntry
	for _, id := range ls.order {
		entry := ls.entries[id]
		if entry == nil || entry.kind != locOrbital {
			continue
		}
		out = append(out, OrbitalEntry{ID: id, Info: OrbitalInfo{Anchor: entry.anchor, Radius: entry.radius}})
	}
	return out
}
