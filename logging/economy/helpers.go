package economy

import (
	"context"

	"orbit-and-ore/server/logging"
)

const (
	// EventBuildRejected is emitted when a construction order cannot be honored.
	EventBuildRejected logging.EventType = "economy.build_rejected"
	// EventBuildingPlaced is emitted for each building that lands in a slot.
	EventBuildingPlaced logging.EventType = "economy.building_placed"
	// EventCargoSold is emitted when a ship dumps its hold at a body.
	EventCargoSold logging.EventType = "economy.cargo_sold"
	// EventShipCommissioned is emitted when a body pays for a new mining ship.
	EventShipCommissioned logging.EventType = "economy.ship_commissioned"
)

// BuildRejectedPayload describes a refused construction order.
type BuildRejectedPayload struct {
	Building string `json:"building"`
	Amount   int    `json:"amount,omitempty"`
	Reason   string `json:"reason"`
}

// BuildingPlacedPayload describes a completed placement.
type BuildingPlacedPayload struct {
	Building string `json:"building"`
	SlotType string `json:"slotType"`
	Slot     int    `json:"slot"`
}

// CargoSoldPayload describes a cargo sale.
type CargoSoldPayload struct {
	Units   float64 `json:"units"`
	Credits float64 `json:"credits"`
}

// ShipCommissionedPayload describes a shipyard commissioning.
type ShipCommissionedPayload struct {
	Cost  float64 `json:"cost"`
	Fleet int     `json:"fleet"`
}

// BuildRejected publishes a refused construction order.
func BuildRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BuildRejectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBuildRejected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// BuildingPlaced publishes a completed placement.
func BuildingPlaced(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BuildingPlacedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBuildingPlaced,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// CargoSold publishes a cargo sale at a body.
func CargoSold(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CargoSoldPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCargoSold,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// ShipCommissioned publishes a mining-ship purchase.
func ShipCommissioned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ShipCommissionedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventShipCommissioned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}
