package world

// EntitySnapshot is the broadcast view of one entity.
type EntitySnapshot struct {
	ID               uint32     `json:"id"`
	Name             string     `json:"name"`
	Type             EntityType `json:"type"`
	Glyph            string     `json:"glyph"`
	Color            Color      `json:"color"`
	X                float64    `json:"x"`
	Y                float64    `json:"y"`
	PlayerControlled bool       `json:"playerControlled,omitempty"`
}

// Snapshot is a self-contained view of the world suitable for broadcast.
type Snapshot struct {
	Tick      uint64           `json:"tick"`
	Entities  []EntitySnapshot `json:"entities"`
	Lanes     []Lane           `json:"lanes,omitempty"`
	Resources ResourceTally    `json:"resources"`
	Rates     ResourceRates    `json:"rates"`
}

// Snapshot captures the current broadcastable state. Entities appear in spawn
// order, so consecutive snapshots diff cleanly on the client.
func (w *World) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Tick:      w.currentTick,
		Lanes:     append([]Lane(nil), w.lanes...),
		Resources: w.Resources(),
		Rates:     w.ResourceRates(),
	}
	snap.Entities = make([]EntitySnapshot, 0, len(w.entities))
	for _, id := range w.entities {
		pos, ok := w.locations.LocationF64(id)
		if !ok {
			continue
		}
		snap.Entities = append(snap.Entities, EntitySnapshot{
			ID:               uint32(id),
			Name:             w.names[id],
			Type:             w.types[id],
			Glyph:            string(w.glyphs[id]),
			Color:            w.colors[id],
			X:                pos.X,
			Y:                pos.Y,
			PlayerControlled: w.IsPlayerControlled(id),
		})
	}
	return snap
}
