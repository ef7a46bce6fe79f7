package lifecycle

import (
	"context"

	"orbit-and-ore/server/logging"
)

const (
	// EventShipSpawned is emitted when a hull enters the simulation.
	EventShipSpawned logging.EventType = "lifecycle.ship_spawned"
	// EventGalaxyPopulated is emitted once after initial map generation.
	EventGalaxyPopulated logging.EventType = "lifecycle.galaxy_populated"
	// EventLanesGenerated is emitted after the star-lane network is built.
	EventLanesGenerated logging.EventType = "lifecycle.lanes_generated"
)

// ShipSpawnedPayload describes a new hull.
type ShipSpawnedPayload struct {
	ShipType string  `json:"shipType"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// GalaxyPopulatedPayload summarizes map generation.
type GalaxyPopulatedPayload struct {
	Stars    int    `json:"stars"`
	Entities int    `json:"entities"`
	Seed     string `json:"seed"`
}

// LanesGeneratedPayload summarizes the lane network.
type LanesGeneratedPayload struct {
	Lanes  int `json:"lanes"`
	Pruned int `json:"pruned"`
}

// ShipSpawned publishes a ship spawn.
func ShipSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ShipSpawnedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventShipSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// GalaxyPopulated publishes the map-generation summary.
func GalaxyPopulated(ctx context.Context, pub logging.Publisher, tick uint64, payload GalaxyPopulatedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventGalaxyPopulated,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// LanesGenerated publishes the lane-network summary.
func LanesGenerated(ctx context.Context, pub logging.Publisher, tick uint64, payload LanesGeneratedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLanesGenerated,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}
