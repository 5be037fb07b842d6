package core

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequestCanceledEventType is the event type identifier.
const RentalRequestCanceledEventType = "RentalRequestCanceled"

// RentalRequestCanceled represents when a patron withdrew their own pending rental request.
type RentalRequestCanceled struct {
	RequestID  RequestIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	OccurredAt OccurredAtTS
}

// BuildRentalRequestCanceled creates a new RentalRequestCanceled event.
func BuildRentalRequestCanceled(requestID uuid.UUID, itemID uuid.UUID, patronID uuid.UUID, occurredAt time.Time) RentalRequestCanceled {
	event := RentalRequestCanceled{
		RequestID:  requestID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RentalRequestCanceled) IsEventType() string {
	return RentalRequestCanceledEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalRequestCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
