package logtap

import (
	"time"

	"github.com/goccy/go-json"
)

// Event is the record delivered to listeners for one intercepted call.
// The same Event value is passed to every listener of that call; Messages
// shares its backing array with the caller's arguments and must not be modified.
type Event struct {
	// Type is the level of the method that was called.
	Type Level
	// Date is the instant the call was captured.
	Date time.Time
	// Timestamp is Date rendered with the interceptor's timestamp layout.
	Timestamp string
	// Messages are the call's arguments, in order.
	Messages []any
	// Logger exposes the original, unwrapped methods. Calling them does not
	// dispatch another event.
	Logger Console
}

// eventPayload is the serialisable part of an Event.
type eventPayload struct {
	Type      Level  `json:"type"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Messages  []any  `json:"messages"`
}

func newEventPayload(e Event, messages []any) eventPayload {
	if messages == nil {
		messages = []any{}
	}

	return eventPayload{
		Type:      e.Type,
		Date:      e.Date.In(time.UTC).Format(time.RFC3339Nano),
		Timestamp: e.Timestamp,
		Messages:  messages,
	}
}

// MarshalJSON encodes the event without its Logger. Error messages are
// encoded as their Error() strings.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(newEventPayload(e, jsonMessages(e.Messages, nil)))
}

// jsonMessages prepares messages for JSON encoding: errors become strings and
// maps are masked when mc is non-nil.
func jsonMessages(messages []any, mc *maskingCore) []any {
	if len(messages) == 0 {
		return messages
	}

	out := make([]any, len(messages))

	for i, m := range messages {
		switch v := m.(type) {
		case error:
			out[i] = v.Error()
		case map[string]any:
			out[i] = mc.maskMap(v)
		case map[string]string:
			out[i] = mc.maskStringMap(v)
		default:
			out[i] = m
		}
	}

	return out
}
