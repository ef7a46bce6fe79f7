// Package protocol defines the JSON wire contract between the server and its
// clients. The same structs feed the schema generator, so the published
// schema can never drift from what the hub actually encodes.
package protocol

import (
	"orbit-and-ore/server/internal/world"
)

// Version is bumped whenever the wire contract changes shape.
const Version = 1

// JoinResponse answers POST /join with the client's id and a full snapshot.
type JoinResponse struct {
	Ver      int            `json:"ver" jsonschema:"title=Protocol version"`
	ID       string         `json:"id" jsonschema:"title=Client id,description=Opaque id to present on the websocket"`
	Config   world.Config   `json:"config"`
	Snapshot world.Snapshot `json:"snapshot"`
}

// StateMessage is the per-tick broadcast.
type StateMessage struct {
	Ver        int            `json:"ver"`
	Type       string         `json:"type" jsonschema:"enum=state"`
	ServerTime int64          `json:"serverTime"`
	Snapshot   world.Snapshot `json:"snapshot"`
}

// CommandMessage is what clients send over the websocket to mutate the world.
type CommandMessage struct {
	Ver     int           `json:"ver"`
	Type    string        `json:"type" jsonschema:"enum=command"`
	Command world.Command `json:"command" jsonschema:"description=Queued verbatim; applied at the top of the next tick"`
}

// HeartbeatMessage keeps an otherwise idle websocket alive.
type HeartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type" jsonschema:"enum=heartbeat"`
	ClientTime int64  `json:"clientTime,omitempty"`
}

// DiagnosticsClient is one row of the /diagnostics endpoint.
type DiagnosticsClient struct {
	Ver      int    `json:"ver"`
	ID       string `json:"id"`
	LastSeen int64  `json:"lastSeen"`
	Dropped  uint64 `json:"dropped"`
}
