package borrowinghistory

import (
	"time"

	"github.com/google/uuid"
)

// CurrentLoan represents units of one item the patron still has.
type CurrentLoan struct {
	ItemID             uuid.UUID
	ItemTitle          string
	Count              int
	EarliestBorrowedAt time.Time
}

// PastLoan represents units of one item the patron brought back.
type PastLoan struct {
	ItemID           uuid.UUID
	ItemTitle        string
	Count            int
	LatestReturnedAt time.Time
}

// BorrowingHistory represents the query result.
type BorrowingHistory struct {
	PatronID uuid.UUID
	Current  []CurrentLoan
	Returned []PastLoan
}
