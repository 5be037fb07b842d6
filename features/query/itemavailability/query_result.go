package itemavailability

import "github.com/google/uuid"

// ItemAvailability represents the Inventory Ledger view of one item.
type ItemAvailability struct {
	ItemID            uuid.UUID
	Title             string
	Quantity          int
	OpenBorrows       int
	AvailableQuantity int
	Status            string
	// StatusInSync is false when the cached item status disagrees with the derived one.
	StatusInSync bool
}
