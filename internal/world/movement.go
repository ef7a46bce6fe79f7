package world

import "log"

// arrivalThreshold is how close a ship must be to its destination before the
// move order completes.
const arrivalThreshold = 0.1

// defaultShipSpeed is used when a ship somehow has no registered hull info.
const defaultShipSpeed = 1.0

// SetMoveOrder points a ship at a destination. Orders for unknown ships are
// ignored.
func (w *World) SetMoveOrder(id EntityID, destination PointF64) {
	if w == nil {
		return
	}
	if _, ok := w.ships[id]; !ok {
		return
	}
	w.moveOrders[id] = destination
}

// MoveOrder returns the active destination of id, if any.
func (w *World) MoveOrder(id EntityID) (PointF64, bool) {
	if w == nil {
		return PointF64{}, false
	}
	dest, ok := w.moveOrders[id]
	return dest, ok
}

// advanceShipMovement steps every ship with an active order straight toward
// its destination. Movement clamps at the destination, never overshooting,
// and an order within the arrival threshold completes immediately.
func (w *World) advanceShipMovement(dt float64) {
	type moveResult struct {
		id      EntityID
		pos     PointF64
		moved   bool
		arrived bool
	}
	var results []moveResult

	for id, dest := range w.moveOrders {
		pos, ok := w.locations.LocationF64(id)
		if !ok {
			results = append(results, moveResult{id: id, arrived: true})
			continue
		}
		distance := pos.DistanceTo(dest)
		if distance < arrivalThreshold {
			results = append(results, moveResult{id: id, arrived: true})
			continue
		}
		speed := defaultShipSpeed
		if info, ok := w.ships[id]; ok && info.Speed > 0 {
			speed = info.Speed
		} else {
			log.Printf("movement: ship %d has no speed, using %v", id, defaultShipSpeed)
		}
		travel := speed * dt
		if travel >= distance {
			results = append(results, moveResult{id: id, pos: dest, moved: true, arrived: true})
			continue
		}
		results = append(results, moveResult{id: id, moved: true, pos: PointF64{
			X: pos.X + (dest.X-pos.X)/distance*travel,
			Y: pos.Y + (dest.Y-pos.Y)/distance*travel,
		}})
	}

	for _, r := range results {
		if r.moved {
			w.locations.SetPositionF64(r.id, r.pos)
		}
		if r.arrived {
			delete(w.moveOrders, r.id)
		}
	}
}
