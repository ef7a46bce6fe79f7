package world

import (
	"strconv"

	"orbit-and-ore/server/logging"
)

// allocateEntity reserves the next id and records the shared attributes every
// entity carries. Callers attach the rest (location, body data, buildings,
// ship state) before the entity is observable mid-tick, so partially built
// entities never leak.
func (w *World) allocateEntity(name string, entityType EntityType, glyph rune, color Color) EntityID {
	id := w.nextEntityID
	w.nextEntityID++
	w.entities = append(w.entities, id)
	w.names[id] = name
	w.types[id] = entityType
	w.glyphs[id] = glyph
	w.colors[id] = color
	return id
}

// Entities returns every live entity id in spawn order.
func (w *World) Entities() []EntityID {
	if w == nil {
		return nil
	}
	return append([]EntityID(nil), w.entities...)
}

// EntityCount reports the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return len(w.entities)
}

// EntityName returns the display name of id.
func (w *World) EntityName(id EntityID) (string, bool) {
	if w == nil {
		return "", false
	}
	name, ok := w.names[id]
	return name, ok
}

// EntityType returns the classification of id.
func (w *World) EntityType(id EntityID) (EntityType, bool) {
	if w == nil {
		return "", false
	}
	t, ok := w.types[id]
	return t, ok
}

// RenderGlyph returns the glyph clients draw for id.
func (w *World) RenderGlyph(id EntityID) (rune, bool) {
	if w == nil {
		return 0, false
	}
	g, ok := w.glyphs[id]
	return g, ok
}

// EntityColor returns the render color of id.
func (w *World) EntityColor(id EntityID) (Color, bool) {
	if w == nil {
		return Color{}, false
	}
	c, ok := w.colors[id]
	return c, ok
}

// IsPlayerControlled reports whether id accepts player commands.
func (w *World) IsPlayerControlled(id EntityID) bool {
	if w == nil {
		return false
	}
	_, ok := w.controlled[id]
	return ok
}

// SetPlayerControlled marks or clears player control of id. Unknown ids are
// ignored.
func (w *World) SetPlayerControlled(id EntityID, controlled bool) {
	if w == nil {
		return
	}
	if _, exists := w.types[id]; !exists {
		return
	}
	if controlled {
		w.controlled[id] = struct{}{}
	} else {
		delete(w.controlled, id)
	}
}

// Location returns the render-grid position of id.
func (w *World) Location(id EntityID) (Point, bool) {
	if w == nil {
		return Point{}, false
	}
	return w.locations.Location(id)
}

// LocationF64 returns the precise position of id.
func (w *World) LocationF64(id EntityID) (PointF64, bool) {
	if w == nil {
		return PointF64{}, false
	}
	return w.locations.LocationF64(id)
}

// OrbitalParameters returns the orbital state of id, if it orbits.
func (w *World) OrbitalParameters(id EntityID) (OrbitalParameters, bool) {
	if w == nil {
		return OrbitalParameters{}, false
	}
	return w.locations.OrbitalParameters(id)
}

// Orbitals returns every orbital registration in spawn order.
func (w *World) Orbitals() []OrbitalEntry {
	if w == nil {
		return nil
	}
	return w.locations.Orbitals()
}

// Body returns the economic state of id, if it is a celestial body.
func (w *World) Body(id EntityID) (*CelestialBodyData, bool) {
	if w == nil {
		return nil, false
	}
	data, ok := w.bodies[id]
	return data, ok
}

// Buildings returns the construction slots of id, if it has any.
func (w *World) Buildings(id EntityID) (*EntityBuildings, bool) {
	if w == nil {
		return nil, false
	}
	eb, ok := w.buildings[id]
	return eb, ok
}

// Ship returns the hull attributes of id, if it is a ship.
func (w *World) Ship(id EntityID) (ShipInfo, bool) {
	if w == nil {
		return ShipInfo{}, false
	}
	info, ok := w.ships[id]
	return info, ok
}

// ShipCargo returns the hold of id, if it carries one.
func (w *World) ShipCargo(id EntityID) (*Cargo, bool) {
	if w == nil {
		return nil, false
	}
	c, ok := w.cargo[id]
	return c, ok
}

// entityRef converts an id to a logging reference using its type.
func (w *World) entityRef(id EntityID) logging.EntityRef {
	kind := logging.EntityKindUnknown
	switch w.types[id] {
	case EntityTypeShip:
		kind = logging.EntityKindShip
	case EntityTypeStar, EntityTypePlanet, EntityTypeMoon, EntityTypeGasGiant:
		kind = logging.EntityKindBody
	}
	return logging.EntityRef{ID: strconv.FormatUint(uint64(id), 10), Kind: kind}
}
