package protocol

import "github.com/invopop/jsonschema"

// clientEnvelope models everything a client may send on the websocket, for
// schema purposes only; the hub dispatches on the type field at runtime.
type clientEnvelope struct {
	Command   *CommandMessage   `json:"command,omitempty"`
	Heartbeat *HeartbeatMessage `json:"heartbeat,omitempty"`
}

// serverEnvelope models everything the server emits.
type serverEnvelope struct {
	Join  *JoinResponse `json:"join,omitempty"`
	State *StateMessage `json:"state,omitempty"`
}

// Schema is the full wire-contract document served at /schema and written by
// cmd/schema for client tooling.
type Schema struct {
	Client clientEnvelope `json:"client"`
	Server serverEnvelope `json:"server"`
}

// BuildSchema reflects the wire contract into a JSON schema.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Schema))
	schema.Title = "Orbit & Ore Wire Contract"
	schema.Description = "Messages exchanged between the simulation server and its clients"
	return schema
}
