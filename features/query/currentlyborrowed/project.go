package currentlyborrowed

import "github.com/AntonStoeckl/gear-rental-go/rental"

// Project converts the open borrow groups into the query result, keeping their order (oldest loan first).
func Project(groups []rental.BorrowGroup) CurrentlyBorrowed {
	result := CurrentlyBorrowed{Borrowed: make([]BorrowedUnits, 0, len(groups))}

	for _, g := range groups {
		result.Borrowed = append(result.Borrowed, BorrowedUnits{
			PatronID:           g.PatronID,
			ItemID:             g.ItemID,
			ItemTitle:          g.ItemTitle,
			Count:              g.Count,
			EarliestBorrowedAt: g.EarliestBorrowedAt,
		})
		result.TotalUnits += g.Count
	}

	return result
}
