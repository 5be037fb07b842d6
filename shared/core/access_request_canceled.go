package core

import (
	"time"

	"github.com/google/uuid"
)

// AccessRequestCanceledEventType is the event type identifier.
const AccessRequestCanceledEventType = "AccessRequestCanceled"

// AccessRequestCanceled represents when a patron withdrew their own pending access request.
type AccessRequestCanceled struct {
	RequestID    RequestIDString
	CollectionID CollectionIDString
	PatronID     PatronIDString
	OccurredAt   OccurredAtTS
}

// BuildAccessRequestCanceled creates a new AccessRequestCanceled event.
func BuildAccessRequestCanceled(
	requestID uuid.UUID,
	collectionID uuid.UUID,
	patronID uuid.UUID,
	occurredAt time.Time,
) AccessRequestCanceled {

	event := AccessRequestCanceled{
		RequestID:    requestID.String(),
		CollectionID: collectionID.String(),
		PatronID:     patronID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e AccessRequestCanceled) IsEventType() string {
	return AccessRequestCanceledEventType
}

// HasOccurredAt returns when this event occurred.
func (e AccessRequestCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
