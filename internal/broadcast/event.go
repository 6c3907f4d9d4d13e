package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventAnalysis is emitted once per successful analysis
const EventAnalysis = "analysis"

// Event is a single frame pushed to subscribers
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// NewEvent marshals data into an event frame
func NewEvent(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	return Event{Name: name, Data: raw}, nil
}

// Broadcaster delivers an event to every subscriber connected at the time of
// the call. Delivery is best-effort: nothing is queued for later subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, event Event) error
}
