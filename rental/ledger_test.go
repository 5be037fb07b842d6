package rental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

func Test_Stock_DerivesAvailabilityAndStatus(t *testing.T) {
	testCases := []struct {
		name              string
		stock             rental.Stock
		expectedAvailable int
		expectedStatus    rental.ItemStatus
	}{
		{name: "nothing on loan", stock: rental.Stock{Quantity: 5}, expectedAvailable: 5, expectedStatus: rental.ItemStatusAvailable},
		{name: "partially on loan", stock: rental.Stock{Quantity: 5, OpenBorrows: 2}, expectedAvailable: 3, expectedStatus: rental.ItemStatusAvailable},
		{name: "everything on loan", stock: rental.Stock{Quantity: 5, OpenBorrows: 5}, expectedAvailable: 0, expectedStatus: rental.ItemStatusRentedOut},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedAvailable, tc.stock.Available())
			assert.Equal(t, tc.expectedStatus, tc.stock.Status())
			assert.True(t, tc.stock.IsConsistent())
		})
	}
}

func Test_Stock_IsInconsistent_WhenMoreUnitsAreOnLoanThanOwned(t *testing.T) {
	assert.False(t, rental.Stock{Quantity: 2, OpenBorrows: 3}.IsConsistent())
}

func Test_ValidateItemQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		valid    bool
	}{
		{name: "zero", quantity: 0, valid: false},
		{name: "negative", quantity: -1, valid: false},
		{name: "lower bound", quantity: 1, valid: true},
		{name: "upper bound", quantity: rental.MaxItemQuantity, valid: true},
		{name: "above upper bound", quantity: rental.MaxItemQuantity + 1, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := rental.ValidateItemQuantity(tc.quantity)

			if tc.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, rental.ErrInvalidInput)
		})
	}
}

// Any sequence of guarded lends, returns and quantity changes keeps the ledger consistent,
// and the derived status is rented_out exactly when nothing is available.
func Test_Stock_GuardedOperationsKeepLedgerConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stock := rental.Stock{Quantity: rapid.IntRange(1, rental.MaxItemQuantity).Draw(t, "quantity")}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for range steps {
			switch rapid.IntRange(0, 2).Draw(t, "operation") {
			case 0:
				n := rapid.IntRange(1, 20).Draw(t, "lend")
				if stock.CanLend(n) {
					stock = stock.Lend(n)
				}

			case 1:
				if stock.OpenBorrows > 0 {
					stock = stock.Return(rapid.IntRange(1, stock.OpenBorrows).Draw(t, "return"))
				}

			case 2:
				quantity := rapid.IntRange(1, rental.MaxItemQuantity).Draw(t, "new quantity")
				if rental.ValidateItemQuantity(quantity) == nil && quantity >= stock.OpenBorrows {
					stock = stock.WithQuantity(quantity)
				}
			}

			if !stock.IsConsistent() {
				t.Fatalf("ledger became inconsistent: %+v", stock)
			}

			if (stock.Status() == rental.ItemStatusRentedOut) != (stock.Available() == 0) {
				t.Fatalf("status %s does not match available %d", stock.Status(), stock.Available())
			}
		}
	})
}

func Test_Stock_LendThenReturnRestoresAvailability(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quantity := rapid.IntRange(1, rental.MaxItemQuantity).Draw(t, "quantity")
		stock := rental.Stock{Quantity: quantity}
		n := rapid.IntRange(1, quantity).Draw(t, "n")

		after := stock.Lend(n).Return(n)

		if after != stock {
			t.Fatalf("expected %+v, got %+v", stock, after)
		}
	})
}
