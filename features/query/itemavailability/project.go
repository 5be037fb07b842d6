package itemavailability

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// Project derives the availability of an item from its stock.
//
// Query Logic:
//
//	GIVEN: The item and its number of open borrow records
//	WHEN: ItemAvailability query is executed
//	THEN: available quantity = quantity - open borrows, status = rented_out when available <= 0
func Project(stock rental.ItemStock) ItemAvailability {
	ledger := stock.Stock()

	return ItemAvailability{
		ItemID:            stock.Item.ID,
		Title:             stock.Item.Title,
		Quantity:          ledger.Quantity,
		OpenBorrows:       ledger.OpenBorrows,
		AvailableQuantity: ledger.Available(),
		Status:            string(ledger.Status()),
		StatusInSync:      stock.Item.Status == ledger.Status(),
	}
}
