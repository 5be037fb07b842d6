package core

import (
	"time"

	"github.com/google/uuid"
)

// BorrowRecordedEventType is the event type identifier.
const BorrowRecordedEventType = "BorrowRecorded"

// BorrowRecorded represents when a librarian lent units directly, without a rental request.
type BorrowRecorded struct {
	ItemID            ItemIDString
	PatronID          PatronIDString
	LibrarianID       LibrarianIDString
	Quantity          int
	BorrowRecordIDs   []string
	AvailableQuantity int
	Status            string
	OccurredAt        OccurredAtTS
}

// BuildBorrowRecorded creates a new BorrowRecorded event.
func BuildBorrowRecorded(
	itemID uuid.UUID,
	patronID uuid.UUID,
	librarianID uuid.UUID,
	borrowRecordIDs []uuid.UUID,
	availableQuantity int,
	status string,
	occurredAt time.Time,
) BorrowRecorded {

	event := BorrowRecorded{
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
func (e BorrowRecorded) IsEventType() string {
	return BorrowRecordedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowRecorded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
