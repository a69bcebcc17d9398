package events

import (
	"log/slog"
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. A consumer
// that falls further behind than this loses intermediate events, which
// the delivery contract allows.
const subscriberBuffer = 16

// Broker is an in-memory broadcast of change events: one channel per
// subscriber, non-blocking publish. It implements Publisher and
// Subscriber.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
	logger *slog.Logger
}

// Ensure Broker implements both broker interfaces
var (
	_ Publisher  = (*Broker)(nil)
	_ Subscriber = (*Broker)(nil)
)

// NewBroker creates a Broker. If logger is nil, a default logger is used.
func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		subs:   make(map[int]chan Event),
		logger: logger.With(slog.String("component", "event_broker")),
	}
}

// Subscribe implements Subscriber.Subscribe. The returned cancel
// function is idempotent and safe to call concurrently with Publish.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// Publish implements Publisher.Publish. Events are sent to each
// subscriber in registration order; a full subscriber channel drops the
// event for that subscriber rather than blocking the committing caller.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Debug("dropping event for slow subscriber",
				"subscriber", id,
				"entity", string(event.Entity),
				"change", string(event.Change))
		}
	}
}

// Close shuts the broker down and closes every subscriber channel.
// Publish and Subscribe become no-ops afterwards.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
