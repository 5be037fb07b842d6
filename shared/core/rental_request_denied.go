package core

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequestDeniedEventType is the event type identifier.
const RentalRequestDeniedEventType = "RentalRequestDenied"

// RentalRequestDenied represents when a librarian rejected a rental request.
type RentalRequestDenied struct {
	RequestID  RequestIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	ApproverID LibrarianIDString
	OccurredAt OccurredAtTS
}

// BuildRentalRequestDenied creates a new RentalRequestDenied event.
func BuildRentalRequestDenied(
	requestID uuid.UUID,
	itemID uuid.UUID,
	patronID uuid.UUID,
	approverID uuid.UUID,
	occurredAt time.Time,
) RentalRequestDenied {

	event := RentalRequestDenied{
		RequestID:  requestID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		ApproverID: approverID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RentalRequestDenied) IsEventType() string {
	return RentalRequestDeniedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalRequestDenied) HasOccurredAt() time.Time {
	return e.OccurredAt
}
