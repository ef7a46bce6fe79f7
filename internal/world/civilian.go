package world

import (
	"context"
	"math"

	"orbit-and-ore/server/logging/economy"
)

const (
	miningRate            = 1.0
	miningShipCost        = 1000.0
	maxMiningShipsPerBase = 16
	civilianFallbackRange = 100.0
	dockingRange          = 2.0
	interceptIterations   = 5
)

// advanceCivilianEconomy runs the per-body economy: population consumes from
// local stocks, generating credits, and prosperous shipyard bodies buy new
// mining ships. Purchases are emitted as BuildShip commands, so the hull
// appears at the top of the next tick like any other spawn. Bodies are visited
// in spawn order and resources in canonical order, keeping credit arithmetic
// and command order identical across identically seeded runs.
func (w *World) advanceCivilianEconomy(dt float64) {
	fleets := make(map[EntityID]int, len(w.civilians))
	for _, ai := range w.civilians {
		fleets[ai.HomeBase]++
	}

	for _, id := range w.entities {
		data, ok := w.bodies[id]
		if !ok {
			continue
		}
		if data.Population > 0 {
			for _, res := range ResourceTypes {
				rate, wanted := data.Demands[res]
				if !wanted {
					continue
				}
				consumed := rate * data.Population * dt
				if stock := data.Stocks[res]; consumed > stock {
					consumed = stock
				}
				if consumed <= 0 {
					continue
				}
				data.Stocks[res] -= consumed
				data.Credits += consumed * res.BasePrice()
			}
		}

		eb, built := w.buildings[id]
		if !built || !eb.Has(BuildingShipyard) {
			continue
		}
		if data.Credits < miningShipCost || fleets[id] >= maxMiningShipsPerBase {
			continue
		}
		data.Credits -= miningShipCost
		fleets[id]++
		w.AddCommand(Command{
			Type:      CommandBuildShip,
			BuildShip: &BuildShipCommand{ShipyardID: id, ShipType: ShipTypeMiningShip},
		})
		economy.ShipCommissioned(context.Background(), w.publisher, w.currentTick, w.entityRef(id), economy.ShipCommissionedPayload{
			Cost:  miningShipCost,
			Fleet: fleets[id],
		}, nil)
	}
}

type civilianTransition struct {
	ship   EntityID
	phase  CivilianPhase
	target EntityID
	sell   bool
}

// advanceCivilianShips drives the mining-ship behavior loop in two passes.
// The first pass only reads world state and collects phase transitions plus
// movement commands; the second applies mutations (phase changes, mined
// cargo, sales). Nothing in the first pass ever observes a half-applied
// ship, and the emitted MoveShip commands take effect next tick. Ships are
// visited in spawn order so target picks draw from the RNG in a stable order.
func (w *World) advanceCivilianShips(dt float64) {
	var transitions []civilianTransition

	for _, id := range w.entities {
		ai, enrolled := w.civilians[id]
		if !enrolled {
			continue
		}
		pos, ok := w.locations.LocationF64(id)
		if !ok {
			continue
		}
		_, moving := w.moveOrders[id]

		switch ai.Phase {
		case CivilianIdle:
			if w.cargo[id].IsFull() {
				transitions = append(transitions, civilianTransition{ship: id, phase: CivilianReturning})
				w.orderTowardBody(id, pos, ai.HomeBase)
				continue
			}
			target, ok := w.pickMiningTarget(id, ai)
			if !ok {
				continue
			}
			transitions = append(transitions, civilianTransition{ship: id, phase: CivilianMovingToMine, target: target})
			w.orderTowardBody(id, pos, target)

		case CivilianMovingToMine:
			if moving {
				continue
			}
			transitions = append(transitions, civilianTransition{ship: id, phase: CivilianMining, target: ai.Target})

		case CivilianMining:
			if w.cargo[id].IsFull() {
				transitions = append(transitions, civilianTransition{ship: id, phase: CivilianReturning})
				w.orderTowardBody(id, pos, ai.HomeBase)
			}

		case CivilianReturning:
			if moving {
				continue
			}
			home, ok := w.locations.LocationF64(ai.HomeBase)
			if ok && pos.DistanceTo(home) > dockingRange {
				// Home drifted along its orbit while we flew; chase it.
				w.orderTowardBody(id, pos, ai.HomeBase)
				continue
			}
			transitions = append(transitions, civilianTransition{ship: id, phase: CivilianIdle, sell: true})
		}
	}

	// Ships that enter Mining this call start extracting next tick, so a
	// fresh arrival keeps its zeroed timer and empty hold for one tick.
	arrived := make(map[EntityID]struct{})
	for _, tr := range transitions {
		ai := w.civilians[tr.ship]
		if ai == nil {
			continue
		}
		if tr.sell {
			w.sellCargo(tr.ship, ai.HomeBase)
		}
		ai.Phase = tr.phase
		ai.Target = tr.target
		if tr.phase == CivilianMining {
			ai.MineTime = 0
			arrived[tr.ship] = struct{}{}
		}
	}

	for _, id := range w.entities {
		ai, enrolled := w.civilians[id]
		if !enrolled || ai.Phase != CivilianMining {
			continue
		}
		if _, fresh := arrived[id]; fresh {
			continue
		}
		data, ok := w.bodies[ai.Target]
		if !ok {
			ai.Phase = CivilianIdle
			continue
		}
		hold := w.cargo[id]
		for _, res := range ResourceTypes {
			yield, mined := data.Yields[res]
			if !mined {
				continue
			}
			hold.Add(res, yield*miningRate*dt)
		}
		ai.MineTime += dt
	}
}

// pickMiningTarget chooses a yield-bearing body uniformly from the ship's
// home system. When the home base belongs to no system the search falls back
// to a fixed radius around the ship.
func (w *World) pickMiningTarget(ship EntityID, ai *CivilianShipAI) (EntityID, bool) {
	origin, _ := w.locations.LocationF64(ship)
	searchRange := civilianFallbackRange
	if star, ok := w.FindStarForEntity(ai.HomeBase); ok {
		if starPos, ok := w.locations.LocationF64(star); ok {
			origin = starPos
		}
		if r := w.SystemRadius(star); r > 0 {
			searchRange = r
		}
	}
	candidates := w.BodiesInRange(origin, searchRange)
	// The home base itself is a valid mine only if it actually yields.
	filtered := candidates[:0]
	for _, id := range candidates {
		if id != ai.HomeBase {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return 0, false
	}
	return filtered[w.RNG().Intn(len(filtered))], true
}

// orderTowardBody queues a MoveShip command aiming at where the body will be
// when the ship gets there, not where it is now.
func (w *World) orderTowardBody(ship EntityID, from PointF64, body EntityID) {
	info, ok := w.ships[ship]
	if !ok || info.Speed <= 0 {
		return
	}
	dest := w.predictOrbitalIntercept(from, info.Speed, body)
	w.AddCommand(Command{
		Type: CommandMoveShip,
		Move: &MoveShipCommand{ShipID: ship, Destination: dest},
	})
}

// predictOrbitalIntercept estimates where an orbiting body will be when a
// ship traveling at speed reaches it, refining the travel-time guess a fixed
// number of rounds. Non-orbital targets resolve to their current position.
// The anchor is treated as stationary over the flight, which is accurate
// enough for in-system hops.
func (w *World) predictOrbitalIntercept(from PointF64, speed float64, target EntityID) PointF64 {
	current, ok := w.locations.LocationF64(target)
	if !ok {
		return from
	}
	params, ok := w.locations.OrbitalParameters(target)
	if !ok || speed <= 0 {
		return current
	}
	anchor, ok := w.locations.LocationF64(params.Anchor)
	if !ok {
		return current
	}

	predicted := current
	travelTime := 0.0
	for i := 0; i < interceptIterations; i++ {
		travelTime = from.DistanceTo(predicted) / speed
		angle := params.Angle + params.AngularVelocity*travelTime
		predicted = PointF64{
			X: anchor.X + params.Radius*math.Cos(angle),
			Y: anchor.Y + params.Radius*math.Sin(angle),
		}
	}
	return predicted
}

// sellCargo dumps a ship's hold into the home base stocks and credits the
// base with the sale value at base prices.
func (w *World) sellCargo(ship, homeBase EntityID) {
	hold := w.cargo[ship]
	if hold == nil || hold.Load <= 0 {
		return
	}
	data, ok := w.bodies[homeBase]
	if !ok {
		hold.Clear()
		return
	}
	units := 0.0
	credits := 0.0
	for _, res := range ResourceTypes {
		amount, carried := hold.Contents[res]
		if !carried {
			continue
		}
		data.Stocks[res] += amount
		units += amount
		credits += amount * res.BasePrice()
	}
	data.Credits += credits
	hold.Clear()

	economy.CargoSold(context.Background(), w.publisher, w.currentTick, w.entityRef(ship), economy.CargoSoldPayload{
		Units:   units,
		Credits: credits,
	}, map[string]any{"homeBase": homeBase})
}
