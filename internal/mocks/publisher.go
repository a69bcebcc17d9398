package mocks

import (
	"sync"

	"github.com/veleda/studyflow/internal/events"
)

// Publisher implements events.Publisher for testing, recording every
// published event.
type Publisher struct {
	mu     sync.Mutex
	Events []events.Event
}

var _ events.Publisher = (*Publisher)(nil)

func (m *Publisher) Publish(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Published returns a copy of the recorded events.
func (m *Publisher) Published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Event, len(m.Events))
	copy(out, m.Events)
	return out
}
