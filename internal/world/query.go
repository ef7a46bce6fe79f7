package world

// FindStarForEntity walks the orbital anchor chain from id up to the star at
// the system's center. Stars resolve to themselves. Mobile and static
// non-star entities belong to no system.
func (w *World) FindStarForEntity(id EntityID) (EntityID, bool) {
	if w == nil {
		return 0, false
	}
	current := id
	for depth := 0; depth < 8; depth++ {
		if w.types[current] == EntityTypeStar {
			return current, true
		}
		params, ok := w.locations.OrbitalParameters(current)
		if !ok {
			return 0, false
		}
		current = params.Anchor
	}
	return 0, false
}

// SystemRadius reports the reach of a star system: the largest accumulated
// orbital radius of any body anchored, directly or through a parent, to the
// star. A star with no satellites has radius zero.
func (w *World) SystemRadius(star EntityID) float64 {
	if w == nil {
		return 0
	}
	reach := make(map[EntityID]float64)
	reach[star] = 0

	// Orbitals are stored parents-first, so one pass resolves every chain.
	var maxRadius float64
	for _, entry := range w.locations.Orbitals() {
		base, ok := reach[entry.Info.Anchor]
		if !ok {
			continue
		}
		total := base + entry.Info.Radius
		reach[entry.ID] = total
		if total > maxRadius {
			maxRadius = total
		}
	}
	return maxRadius
}

// BodiesInRange returns every yield-bearing celestial body within radius of
// origin, in spawn order.
func (w *World) BodiesInRange(origin PointF64, radius float64) []EntityID {
	if w == nil {
		return nil
	}
	var out []EntityID
	for _, id := range w.entities {
		data, ok := w.bodies[id]
		if !ok || len(data.Yields) == 0 {
			continue
		}
		pos, ok := w.locations.LocationF64(id)
		if !ok {
			continue
		}
		if origin.DistanceTo(pos) <= radius {
			out = append(out, id)
		}
	}
	return out
}
