package currentlyborrowed

import (
	"time"

	"github.com/google/uuid"
)

// BorrowedUnits represents the units of one item a patron currently has.
type BorrowedUnits struct {
	PatronID           uuid.UUID
	ItemID             uuid.UUID
	ItemTitle          string
	Count              int
	EarliestBorrowedAt time.Time
}

// CurrentlyBorrowed represents the query result.
type CurrentlyBorrowed struct {
	Borrowed   []BorrowedUnits
	TotalUnits int
}
