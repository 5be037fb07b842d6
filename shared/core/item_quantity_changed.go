package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemQuantityChangedEventType is the event type identifier.
const ItemQuantityChangedEventType = "ItemQuantityChanged"

// ItemQuantityChanged represents when the number of units an item owns was corrected.
// AvailableQuantity and Status describe the ledger right after the change.
type ItemQuantityChanged struct {
	ItemID            ItemIDString
	PreviousQuantity  int
	Quantity          int
	AvailableQuantity int
	Status            string
	LibrarianID       LibrarianIDString
	OccurredAt        OccurredAtTS
}

// BuildItemQuantityChanged creates a new ItemQuantityChanged event.
func BuildItemQuantityChanged(
	itemID uuid.UUID,
	previousQuantity int,
	quantity int,
	availableQuantity int,
	status string,
	librarianID uuid.UUID,
	occurredAt time.Time,
) ItemQuantityChanged {

	event := ItemQuantityChanged{
		ItemID:            itemID.String(),
		PreviousQuantity:  previousQuantity,
		Quantity:          quantity,
		AvailableQuantity: availableQuantity,
		Status:            status,
		LibrarianID:       librarianID.String(),
		OccurredAt:        ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ItemQuantityChanged) IsEventType() string {
	return ItemQuantityChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemQuantityChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
