package core

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequestSubmittedEventType is the event type identifier.
const RentalRequestSubmittedEventType = "RentalRequestSubmitted"

// RentalRequestSubmitted represents when a patron asked to rent units of an item.
type RentalRequestSubmitted struct {
	RequestID  RequestIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	Quantity   int
	OccurredAt OccurredAtTS
}

// BuildRentalRequestSubmitted creates a new RentalRequestSubmitted event.
func BuildRentalRequestSubmitted(
	requestID uuid.UUID,
	itemID uuid.UUID,
	patronID uuid.UUID,
	quantity int,
	occurredAt time.Time,
) RentalRequestSubmitted {

	event := RentalRequestSubmitted{
		RequestID:  requestID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RentalRequestSubmitted) IsEventType() string {
	return RentalRequestSubmittedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalRequestSubmitted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
