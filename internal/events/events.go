package events

import (
	"time"

	"github.com/google/uuid"
)

// Entity identifies which aggregate a change event is about.
type Entity string

// Entities that emit change events.
const (
	EntityTask    Entity = "task"
	EntitySession Entity = "session"
	EntityReview  Entity = "review"
	EntityStats   Entity = "stats"
	EntityGroup   Entity = "group"
)

// ChangeType describes what happened to the entity.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Event is one committed entity change. EntityID is the primary ID of
// the changed row where one exists; batch changes carry the parent ID
// (e.g. the session for a review batch).
type Event struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Entity     Entity     `json:"entity"`
	Change     ChangeType `json:"change"`
	EntityID   uuid.UUID  `json:"entity_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewEvent creates an Event stamped with a fresh ID and the current time.
func NewEvent(userID uuid.UUID, entity Entity, change ChangeType, entityID uuid.UUID) Event {
	return Event{
		ID:         uuid.New(),
		UserID:     userID,
		Entity:     entity,
		Change:     change,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is the side of the broker the service layer sees.
type Publisher interface {
	// Publish delivers the event to every current subscriber without
	// blocking the caller.
	Publish(event Event)
}

// Subscriber is the side of the broker reactive consumers see.
type Subscriber interface {
	// Subscribe registers a new consumer and returns its event channel
	// together with a cancel function. The channel is closed on cancel
	// and on broker shutdown.
	Subscribe() (<-chan Event, func())
}
