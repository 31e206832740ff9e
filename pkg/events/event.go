package events

import (
	"strings"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix for this event (e.g., "recipe.search").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Activity types, one per dispatched query kind.
const (
	ActivitySearch = "search"
	ActivityRefine = "refine"
	ActivitySelect = "select"
	ActivityModify = "modify"
	ActivityReset  = "reset"
)

// ActivityEvent records one handled assistant request.
type ActivityEvent struct {
	Type        string    `json:"type"`
	SessionKey  string    `json:"session_key"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewActivityEvent(activityType, sessionKey, query string, resultCount int) ActivityEvent {
	return ActivityEvent{
		Type:        strings.ToLower(activityType),
		SessionKey:  sessionKey,
		Query:       query,
		ResultCount: resultCount,
		OccurredAt:  time.Now().UTC(),
	}
}

func (e ActivityEvent) EventType() string {
	return "recipe." + e.Type
}

func (e ActivityEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"type":         e.Type,
		"session_key":  e.SessionKey,
		"query":        e.Query,
		"result_count": e.ResultCount,
		"occurred_at":  e.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (e ActivityEvent) Timestamp() time.Time {
	return e.OccurredAt
}
