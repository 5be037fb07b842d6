package core

import (
	"time"

	"github.com/google/uuid"
)

// BorrowedUnitsReturnedEventType is the event type identifier.
const BorrowedUnitsReturnedEventType = "BorrowedUnitsReturned"

// BorrowedUnitsReturned represents when a patron brought back units of an item.
// BorrowRecordIDs are the closed records, oldest first.
type BorrowedUnitsReturned struct {
	ItemID            ItemIDString
	PatronID          PatronIDString
	LibrarianID       LibrarianIDString
	Quantity          int
	BorrowRecordIDs   []string
	AvailableQuantity int
	Status            string
	OccurredAt        OccurredAtTS
}

// BuildBorrowedUnitsReturned creates a new BorrowedUnitsReturned event.
func BuildBorrowedUnitsReturned(
	itemID uuid.UUID,
	patronID uuid.UUID,
	librarianID uuid.UUID,
	borrowRecordIDs []uuid.UUID,
	availableQuantity int,
	status string,
	occurredAt time.Time,
) BorrowedUnitsReturned {

	event := BorrowedUnitsReturned{
		ItemID:            itemID.String(),
		PatronID:          patronID.String(),
		LibrarianID:       librarianID.String(),
		Quantity:          len(borrowRecordIDs),
		BorrowRecordIDs:   IDStrings(borrowRecordIDs),
		AvailableQuantity: availableQuantity,
		Status:            status,
		OccurredAt:        ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BorrowedUnitsReturned) IsEventType() string {
	return BorrowedUnitsReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowedUnitsReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
