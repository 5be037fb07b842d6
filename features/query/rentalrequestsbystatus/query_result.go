package rentalrequestsbystatus

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequestInfo represents a single rental request in the listing.
type RentalRequestInfo struct {
	RequestID      uuid.UUID
	ItemID         uuid.UUID
	PatronID       uuid.UUID
	Quantity       int
	Status         string
	CreatedAt      time.Time
	DecidedAt      *time.Time
	RentStartDate  *time.Time
	RentReturnDate *time.Time
}

// StatusCounts holds the number of requests per status.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}

// RentalRequests represents the query result.
type RentalRequests struct {
	Requests []RentalRequestInfo
	Counts   StatusCounts
}
