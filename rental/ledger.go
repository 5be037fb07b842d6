package rental

import "fmt"

// Stock is the Inventory Ledger view of one item: the units it owns and the units currently on loan.
// Available quantity and status are always derived from these two numbers, never stored on their own.
type Stock struct {
	Quantity    int
	OpenBorrows int
}

// AvailableQuantity is quantity minus the number of open borrow records.
func AvailableQuantity(quantity, openBorrows int) int {
	return quantity - openBorrows
}

// StatusFor derives the item status from the available quantity.
func StatusFor(available int) ItemStatus {
	if available <= 0 {
		return ItemStatusRentedOut
	}

	return ItemStatusAvailable
}

// Available returns the units not currently on loan.
func (s Stock) Available() int {
	return AvailableQuantity(s.Quantity, s.OpenBorrows)
}

// Status returns the derived item status.
func (s Stock) Status() ItemStatus {
	return StatusFor(s.Available())
}

// IsConsistent reports whether the ledger invariant (available quantity >= 0) holds.
func (s Stock) IsConsistent() bool {
	return s.OpenBorrows >= 0 && s.Available() >= 0
}

// CanLend reports whether n more units can go out.
func (s Stock) CanLend(n int) bool {
	return n > 0 && n <= s.Available()
}

// Lend returns the stock after n more units went out.
func (s Stock) Lend(n int) Stock {
	return Stock{Quantity: s.Quantity, OpenBorrows: s.OpenBorrows + n}
}

// Return returns the stock after n units came back.
func (s Stock) Return(n int) Stock {
	return Stock{Quantity: s.Quantity, OpenBorrows: s.OpenBorrows - n}
}

// WithQuantity returns the stock after the owned quantity changed.
func (s Stock) WithQuantity(quantity int) Stock {
	return Stock{Quantity: quantity, OpenBorrows: s.OpenBorrows}
}

// ValidateItemQuantity checks the bounds for an item's owned quantity.
func ValidateItemQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return NewInvalidInput(fmt.Sprintf("Quantity must be between 1 and %d.", MaxItemQuantity))
	}

	return nil
}
