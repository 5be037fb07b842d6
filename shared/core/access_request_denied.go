package core

import (
	"time"

	"github.com/google/uuid"
)

// AccessRequestDeniedEventType is the event type identifier.
const AccessRequestDeniedEventType = "AccessRequestDenied"

// AccessRequestDenied represents when a librarian rejected an access request.
type AccessRequestDenied struct {
	RequestID    RequestIDString
	CollectionID CollectionIDString
	PatronID     PatronIDString
	ApproverID   LibrarianIDString
	OccurredAt   OccurredAtTS
}

// BuildAccessRequestDenied creates a new AccessRequestDenied event.
func BuildAccessRequestDenied(
	requestID uuid.UUID,
	collectionID uuid.UUID,
	patronID uuid.UUID,
	approverID uuid.UUID,
	occurredAt time.Time,
) AccessRequestDenied {

	event := AccessRequestDenied{
		RequestID:    requestID.String(),
		CollectionID: collectionID.String(),
		PatronID:     patronID.String(),
		ApproverID:   approverID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e AccessRequestDenied) IsEventType() string {
	return AccessRequestDeniedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AccessRequestDenied) HasOccurredAt() time.Time {
	return e.OccurredAt
}
