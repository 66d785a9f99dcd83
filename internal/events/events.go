package events

import (
	"context"
	"time"
)

const EventMessageSent = "MessageSent"

// Event is the envelope published to participant channels.
type Event struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher delivers an event to a set of per-user channels. Delivery is
// fire-and-forget; callers never wait for an acknowledgement.
type Publisher interface {
	Publish(ctx context.Context, event Event, userIDs ...string) error
}

// UserChannel names the pub/sub channel a user's realtime consumers listen on.
func UserChannel(userID string) string {
	return "user:" + userID + ":events"
}
