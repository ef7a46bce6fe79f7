package simulation

import (
	"context"

	"orbit-and-ore/server/logging"
)

const (
	// EventCommandRejected is emitted when a queued command references state
	// that no longer exists or fails validation.
	EventCommandRejected logging.EventType = "simulation.command_rejected"
	// EventCommandDropped is emitted when a client command never reaches the
	// queue (throttled or malformed).
	EventCommandDropped logging.EventType = "simulation.command_dropped"
	// EventTickLagged is emitted when the loop needs catch-up steps.
	EventTickLagged logging.EventType = "simulation.tick_lagged"
)

// CommandRejectedPayload describes a rejected command.
type CommandRejectedPayload struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

// CommandDroppedPayload describes a dropped client command.
type CommandDroppedPayload struct {
	Command string `json:"command,omitempty"`
	Reason  string `json:"reason"`
}

// TickLaggedPayload describes a catch-up burst.
type TickLaggedPayload struct {
	Steps   int     `json:"steps"`
	Backlog float64 `json:"backlogSeconds"`
}

// CommandRejected publishes a command validation failure.
func CommandRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CommandRejectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCommandRejected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

// CommandDropped publishes a dropped client command.
func CommandDropped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CommandDroppedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCommandDropped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

// TickLagged publishes a loop catch-up burst.
func TickLagged(ctx context.Context, pub logging.Publisher, tick uint64, payload TickLaggedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickLagged,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}
