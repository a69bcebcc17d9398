// Package events carries entity-change notifications from the service
// layer to reactive consumers such as the calendar and stats screens.
// Consumers subscribe for a channel of events and cancel when done;
// publishers never block on slow consumers, so a subscriber observes
// mutations in commit order but is only guaranteed eventual consistency
// with the latest committed value, not every intermediate state.
package events
