package protocol

import (
	"encoding/json"
	"fmt"
)

// Events pushed by the room server.
const (
	EventJoined   = "joined"
	EventError    = "error"
	EventRoom     = "room"
	EventTimer    = "timer"
	EventPrompt   = "prompt"
	EventChoices  = "choices"
	EventScores   = "scores"
	EventGameOver = "gameOver"
)

// Events emitted by a client.
const (
	EventJoin         = "join"
	EventStartGame    = "startGame"
	EventSubmitAnswer = "submitAnswer"
	EventSubmitVote   = "submitVote"
)

// Synthetic transport-lifecycle events. These never travel over the wire;
// the session dispatches them locally around connection establishment.
const (
	EventConnect      = "connect"
	EventConnectError = "connect_error"
)

// Envelope is the wire frame: an event name plus a JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope wraps a payload for sending.
func NewEnvelope(event string, payload any) (*Envelope, error) {
	if payload == nil {
		return &Envelope{Event: event}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return &Envelope{Event: event, Data: data}, nil
}

// Decode unmarshals the envelope payload into target.
func (e *Envelope) Decode(target any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Event, err)
	}
	return nil
}
