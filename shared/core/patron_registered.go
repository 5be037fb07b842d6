package core

import (
	"time"

	"github.com/google/uuid"
)

// PatronRegisteredEventType is the event type identifier.
const PatronRegisteredEventType = "PatronRegistered"

// PatronRegistered represents when a user profile became known to the engine.
type PatronRegistered struct {
	PatronID   PatronIDString
	Name       string
	Role       string
	OccurredAt OccurredAtTS
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(patronID uuid.UUID, name string, role string, occurredAt time.Time) PatronRegistered {
	event := PatronRegistered{
		PatronID:   patronID.String(),
		Name:       name,
		Role:       role,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e PatronRegistered) IsEventType() string {
	return PatronRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
