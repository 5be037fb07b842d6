package core

import (
	"time"

	"github.com/google/uuid"
)

// AccessRequestApprovedEventType is the event type identifier.
const AccessRequestApprovedEventType = "AccessRequestApproved"

// AccessRequestApproved represents when a librarian approved an access request and the patron joined the allowed users.
type AccessRequestApproved struct {
	RequestID    RequestIDString
	CollectionID CollectionIDString
	PatronID     PatronIDString
	ApproverID   LibrarianIDString
	OccurredAt   OccurredAtTS
}

// BuildAccessRequestApproved creates a new AccessRequestApproved event.
func BuildAccessRequestApproved(
	requestID uuid.UUID,
	collectionID uuid.UUID,
	patronID uuid.UUID,
	approverID uuid.UUID,
	occurredAt time.Time,
) AccessRequestApproved {

	event := AccessRequestApproved{
		RequestID:    requestID.String(),
		CollectionID: collectionID.String(),
		PatronID:     patronID.String(),
		ApproverID:   approverID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e AccessRequestApproved) IsEventType() string {
	return AccessRequestApprovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AccessRequestApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
