package borrowinghistory

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// Project combines the open and the returned borrow groups of a patron.
// Current loans are listed oldest first, returned ones most recently returned first.
func Project(patronID uuid.UUID, open []rental.BorrowGroup, returned []rental.ReturnGroup) BorrowingHistory {
	result := BorrowingHistory{
		PatronID: patronID,
		Current:  make([]CurrentLoan, 0, len(open)),
		Returned: make([]PastLoan, 0, len(returned)),
	}

	for _, g := range open {
		result.Current = append(result.Current, CurrentLoan{
			ItemID:             g.ItemID,
			ItemTitle:          g.ItemTitle,
			Count:              g.Count,
			EarliestBorrowedAt: g.EarliestBorrowedAt,
		})
	}

	for _, g := range returned {
		result.Returned = append(result.Returned, PastLoan{
			ItemID:           g.ItemID,
			ItemTitle:        g.ItemTitle,
			Count:            g.Count,
			LatestReturnedAt: g.LatestReturnedAt,
		})
	}

	return result
}
