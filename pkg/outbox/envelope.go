package outbox

import (
	"encoding/json"
	"time"
)

// ActorRef identifies the shopper that triggered the event by fingerprint only.
type ActorRef struct {
	Identity string `json:"identity"`
}

// PayloadEnvelope is the stable payload structure stored in outbox_events.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}
