package world

import (
	"context"

	"orbit-and-ore/server/logging"
	"orbit-and-ore/server/logging/economy"
	"orbit-and-ore/server/logging/simulation"
)

// CommandType names a queued state mutation.
type CommandType string

const (
	CommandMoveShip  CommandType = "MoveShip"
	CommandBuildShip CommandType = "BuildShip"
	CommandBuild     CommandType = "Build"
)

// MoveShipCommand orders a ship toward a destination.
type MoveShipCommand struct {
	ShipID      EntityID `json:"shipId"`
	Destination PointF64 `json:"destination"`
}

// BuildShipCommand orders a shipyard body to spawn a hull.
type BuildShipCommand struct {
	ShipyardID EntityID `json:"shipyardId"`
	ShipType   ShipType `json:"shipType"`
}

// BuildCommand orders construction on a body. Amount zero means one.
type BuildCommand struct {
	EntityID EntityID     `json:"entityId"`
	Building BuildingType `json:"building"`
	Amount   int          `json:"amount,omitempty"`
}

// Command is a tagged union; exactly one payload pointer matching Type is
// set.
type Command struct {
	Type      CommandType       `json:"type"`
	Move      *MoveShipCommand  `json:"move,omitempty"`
	BuildShip *BuildShipCommand `json:"buildShip,omitempty"`
	Build     *BuildCommand     `json:"build,omitempty"`
}

// AddCommand appends a command to the queue. The queue drains once at the top
// of the next Update, so commands act on the state their issuer observed,
// one tick late.
func (w *World) AddCommand(cmd Command) {
	if w == nil {
		return
	}
	w.commands = append(w.commands, cmd)
}

// QueuedCommands reports how many commands await the next tick.
func (w *World) QueuedCommands() int {
	if w == nil {
		return 0
	}
	return len(w.commands)
}

// processCommands drains the queue in FIFO order. Invalid commands are logged
// and skipped; they never abort the rest of the queue.
func (w *World) processCommands() {
	pending := w.commands
	w.commands = nil
	for _, cmd := range pending {
		switch cmd.Type {
		case CommandMoveShip:
			if cmd.Move != nil {
				w.applyMoveShip(*cmd.Move)
			}
		case CommandBuildShip:
			if cmd.BuildShip != nil {
				w.applyBuildShip(*cmd.BuildShip)
			}
		case CommandBuild:
			if cmd.Build != nil {
				w.applyBuild(*cmd.Build)
			}
		default:
			simulation.CommandRejected(context.Background(), w.publisher, w.currentTick, logging.EntityRef{Kind: logging.EntityKindWorld}, simulation.CommandRejectedPayload{
				Command: string(cmd.Type),
				Reason:  "unknown command type",
			}, nil)
		}
	}
}

func (w *World) applyMoveShip(cmd MoveShipCommand) {
	if _, ok := w.ships[cmd.ShipID]; !ok {
		simulation.CommandRejected(context.Background(), w.publisher, w.currentTick, w.entityRef(cmd.ShipID), simulation.CommandRejectedPayload{
			Command: string(CommandMoveShip),
			Reason:  "not a ship",
		}, nil)
		return
	}
	w.moveOrders[cmd.ShipID] = cmd.Destination
}

// applyBuildShip spawns the requested hull near the shipyard body, offset by
// a couple of units so stacked launches stay visually distinct.
func (w *World) applyBuildShip(cmd BuildShipCommand) {
	eb, ok := w.buildings[cmd.ShipyardID]
	if !ok || !eb.Has(BuildingShipyard) {
		simulation.CommandRejected(context.Background(), w.publisher, w.currentTick, w.entityRef(cmd.ShipyardID), simulation.CommandRejectedPayload{
			Command: string(CommandBuildShip),
			Reason:  "no shipyard at entity",
		}, nil)
		return
	}
	origin, ok := w.locations.LocationF64(cmd.ShipyardID)
	if !ok {
		simulation.CommandRejected(context.Background(), w.publisher, w.currentTick, w.entityRef(cmd.ShipyardID), simulation.CommandRejectedPayload{
			Command: string(CommandBuildShip),
			Reason:  "shipyard has no location",
		}, nil)
		return
	}
	spawnAt := PointF64{
		X: origin.X + RandomRange(w.RNG(), -2, 2),
		Y: origin.Y + RandomRange(w.RNG(), -2, 2),
	}
	switch cmd.ShipType {
	case ShipTypeMiningShip:
		w.SpawnMiningShip(spawnAt, cmd.ShipyardID)
	default:
		w.SpawnFrigate(spawnAt)
	}
}

// applyBuild places one or more buildings on a body, paying from the body's
// local stocks. Affordability and slot capacity are checked for the whole
// order up front; a rejected order changes nothing.
func (w *World) applyBuild(cmd BuildCommand) {
	amount := cmd.Amount
	if amount <= 0 {
		amount = 1
	}
	reject := func(reason string) {
		economy.BuildRejected(context.Background(), w.publisher, w.currentTick, w.entityRef(cmd.EntityID), economy.BuildRejectedPayload{
			Building: string(cmd.Building),
			Amount:   amount,
			Reason:   reason,
		}, nil)
	}

	data, ok := w.bodies[cmd.EntityID]
	if !ok {
		reject("not a celestial body")
		return
	}
	eb, ok := w.buildings[cmd.EntityID]
	if !ok {
		reject("body has no construction slots")
		return
	}
	cost := cmd.Building.Cost()
	if cost == nil {
		reject("unknown building")
		return
	}
	slot := cmd.Building.SlotType()
	if eb.FreeSlots(slot) < amount {
		reject("not enough free slots")
		return
	}
	for res, perUnit := range cost {
		if data.Stocks[res] < perUnit*float64(amount) {
			reject("insufficient stocks")
			return
		}
	}

	for n := 0; n < amount; n++ {
		index, _ := eb.FindFirstEmptySlot(slot)
		if err := eb.Build(slot, index, cmd.Building); err != nil {
			reject(err.Error())
			return
		}
		for res, perUnit := range cost {
			data.Stocks[res] -= perUnit
		}
		economy.BuildingPlaced(context.Background(), w.publisher, w.currentTick, w.entityRef(cmd.EntityID), economy.BuildingPlacedPayload{
			Building: string(cmd.Building),
			SlotType: string(slot),
			Slot:     index,
		}, nil)
	}
}
