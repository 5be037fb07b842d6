package recordborrow_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/recordborrow"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		name              string
		itemQuantity      int
		openBorrows       int
		quantity          int
		expectedErr       error
		expectedAvailable int
		expectedStatus    rental.ItemStatus
	}{
		{name: "lend part of the stock", itemQuantity: 5, openBorrows: 1, quantity: 2, expectedAvailable: 2, expectedStatus: rental.ItemStatusAvailable},
		{name: "lend the last units", itemQuantity: 3, openBorrows: 1, quantity: 2, expectedAvailable: 0, expectedStatus: rental.ItemStatusRentedOut},
		{name: "zero quantity", itemQuantity: 3, quantity: 0, expectedErr: rental.ErrInvalidInput},
		{name: "negative quantity", itemQuantity: 3, quantity: -1, expectedErr: rental.ErrInvalidInput},
		{name: "more than available", itemQuantity: 3, openBorrows: 2, quantity: 2, expectedErr: rental.ErrInsufficientStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			item := rental.Item{ID: uuid.New(), Title: "Tent", Quantity: tc.itemQuantity}
			command := recordborrow.BuildCommand(rental.Librarian(uuid.New()), item.ID, uuid.New(), tc.quantity, time.Now())

			// act
			result := recordborrow.Decide(
				recordborrow.State{Item: item, OpenBorrows: tc.openBorrows},
				command,
			)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
				return
			}

			require.True(t, result.HasEventToAppend())
			event, ok := result.Event.(core.BorrowRecorded)
			require.True(t, ok)
			assert.Equal(t, tc.quantity, event.Quantity)
			assert.Len(t, event.BorrowRecordIDs, tc.quantity)
			assert.Equal(t, tc.expectedAvailable, event.AvailableQuantity)
			assert.Equal(t, string(tc.expectedStatus), event.Status)
		})
	}
}

func Test_Decide_GeneratesRecordIDsOnlyAfterStockCheck(t *testing.T) {
	testCases := []struct {
		name        string
		quantity    int
		expectedErr error
	}{
		{name: "huge quantity", quantity: math.MaxInt, expectedErr: rental.ErrInsufficientStock},
		{name: "zero quantity", quantity: 0, expectedErr: rental.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			item := rental.Item{ID: uuid.New(), Title: "Tent", Quantity: 3}
			calls := 0
			state := recordborrow.State{
				Item: item,
				RecordIDs: func(n int) ([]uuid.UUID, error) {
					calls++
					return rental.NewRecordIDs(n)
				},
			}

			// act
			result := recordborrow.Decide(state, recordborrow.BuildCommand(rental.Librarian(uuid.New()), item.ID, uuid.New(), tc.quantity, time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.Zero(t, calls)
		})
	}
}

func Test_Decide_Fails_WhenRecordIDsCannotBeGenerated(t *testing.T) {
	// arrange
	item := rental.Item{ID: uuid.New(), Title: "Tent", Quantity: 3}
	failure := errors.New("no entropy")
	state := recordborrow.State{
		Item:      item,
		RecordIDs: func(int) ([]uuid.UUID, error) { return nil, failure },
	}

	// act
	result := recordborrow.Decide(state, recordborrow.BuildCommand(rental.Librarian(uuid.New()), item.ID, uuid.New(), 1, time.Now()))

	// assert
	assert.ErrorIs(t, result.HasError(), failure)
}
