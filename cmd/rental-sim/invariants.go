package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// StockReader is the part of the read model the ledger check needs.
type StockReader interface {
	ItemStocks(ctx context.Context, filter rental.ItemFilter) ([]rental.ItemStock, error)
}

// Inconsistency describes an item whose ledger is broken.
type Inconsistency struct {
	ItemID        uuid.UUID
	Title         string
	Quantity      int
	OpenBorrows   int
	CachedStatus  rental.ItemStatus
	DerivedStatus rental.ItemStatus
}

// VerifyLedger returns every item whose open borrows exceed its quantity or whose cached status is stale.
func VerifyLedger(ctx context.Context, reader StockReader) ([]Inconsistency, error) {
	stocks, err := reader.ItemStocks(ctx, rental.ItemFilter{})
	if err != nil {
		return nil, err
	}

	var found []Inconsistency
	for _, itemStock := range stocks {
		stock := itemStock.Stock()
		if stock.IsConsistent() && itemStock.Item.Status == stock.Status() {
			continue
		}

		found = append(found, Inconsistency{
			ItemID:        itemStock.Item.ID,
			Title:         itemStock.Item.Title,
			Quantity:      stock.Quantity,
			OpenBorrows:   stock.OpenBorrows,
			CachedStatus:  itemStock.Item.Status,
			DerivedStatus: stock.Status(),
		})
	}

	return found, nil
}
