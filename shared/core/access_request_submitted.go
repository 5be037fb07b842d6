package core

import (
	"time"

	"github.com/google/uuid"
)

// AccessRequestSubmittedEventType is the event type identifier.
const AccessRequestSubmittedEventType = "AccessRequestSubmitted"

// AccessRequestSubmitted represents when a patron asked to be allowed into a private collection.
type AccessRequestSubmitted struct {
	RequestID    RequestIDString
	CollectionID CollectionIDString
	PatronID     PatronIDString
	OccurredAt   OccurredAtTS
}

// BuildAccessRequestSubmitted creates a new AccessRequestSubmitted event.
func BuildAccessRequestSubmitted(
	requestID uuid.UUID,
	collectionID uuid.UUID,
	patronID uuid.UUID,
	occurredAt time.Time,
) AccessRequestSubmitted {

	event := AccessRequestSubmitted{
		RequestID:    requestID.String(),
		CollectionID: collectionID.String(),
		PatronID:     patronID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e AccessRequestSubmitted) IsEventType() string {
	return AccessRequestSubmittedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AccessRequestSubmitted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
