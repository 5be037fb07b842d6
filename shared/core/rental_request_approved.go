package core

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequestApprovedEventType is the event type identifier.
const RentalRequestApprovedEventType = "RentalRequestApproved"

// RentalRequestApproved represents when a librarian approved a rental request and the units went out.
// BorrowRecordIDs lists one open borrow record per lent unit.
type RentalRequestApproved struct {
	RequestID         RequestIDString
	ItemID            ItemIDString
	PatronID          PatronIDString
	ApproverID        LibrarianIDString
	Quantity          int
	BorrowRecordIDs   []string
	RentStartDate     time.Time
	RentReturnDate    time.Time
	AvailableQuantity int
	Status            string
	OccurredAt        OccurredAtTS
}

// BuildRentalRequestApproved creates a new RentalRequestApproved event.
func BuildRentalRequestApproved(
	requestID uuid.UUID,
	itemID uuid.UUID,
	patronID uuid.UUID,
	approverID uuid.UUID,
	borrowRecordIDs []uuid.UUID,
	rentReturnDate time.Time,
	availableQuantity int,
	status string,
	occurredAt time.Time,
) RentalRequestApproved {

	event := RentalRequestApproved{
		RequestID:         requestID.String(),
		ItemID:            itemID.String(),
		PatronID:          patronID.String(),
		ApproverID:        approverID.String(),
		Quantity:          len(borrowRecordIDs),
		BorrowRecordIDs:   IDStrings(borrowRecordIDs),
		RentStartDate:     ToOccurredAt(occurredAt),
		RentReturnDate:    ToOccurredAt(rentReturnDate),
		AvailableQuantity: availableQuantity,
		Status:            status,
		OccurredAt:        ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e RentalRequestApproved) IsEventType() string {
	return RentalRequestApprovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalRequestApproved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
