package approverentalrequest_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/approverentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

func givenState(status rental.RequestStatus, quantity, itemQuantity, openBorrows int) approverentalrequest.State {
	item := rental.Item{ID: uuid.New(), Title: "Tent", Quantity: itemQuantity}

	return approverentalrequest.State{
		Request:     rental.RentalRequest{ID: uuid.New(), ItemID: item.ID, PatronID: uuid.New(), Quantity: quantity, Status: status},
		Item:        item,
		OpenBorrows: openBorrows,
	}
}

func Test_Decide_Success(t *testing.T) {
	testCases := []struct {
		name              string
		state             approverentalrequest.State
		expectedAvailable int
		expectedStatus    string
	}{
		{name: "units left afterwards", state: givenState(rental.RequestStatusPending, 2, 5, 0), expectedAvailable: 3, expectedStatus: "available"},
		{name: "last units go out", state: givenState(rental.RequestStatusPending, 3, 5, 2), expectedAvailable: 0, expectedStatus: "rented_out"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
			command := approverentalrequest.BuildCommand(rental.Librarian(uuid.New()), tc.state.Request.ID, now)

			// act
			result := approverentalrequest.Decide(tc.state, command)

			// assert
			require.True(t, result.HasEventToAppend())
			event, ok := result.Event.(core.RentalRequestApproved)
			require.True(t, ok)
			assert.Equal(t, tc.state.Request.Quantity, event.Quantity)
			assert.Len(t, event.BorrowRecordIDs, tc.state.Request.Quantity)
			assert.Equal(t, tc.expectedAvailable, event.AvailableQuantity)
			assert.Equal(t, tc.expectedStatus, event.Status)
			assert.Equal(t, now, event.RentStartDate)
			assert.Equal(t, now.Add(7*24*time.Hour), event.RentReturnDate)
		})
	}
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name        string
		state       approverentalrequest.State
		expectedErr error
	}{
		{name: "already approved", state: givenState(rental.RequestStatusApproved, 1, 5, 0), expectedErr: rental.ErrInvalidState},
		{name: "already rejected", state: givenState(rental.RequestStatusRejected, 1, 5, 0), expectedErr: rental.ErrInvalidState},
		{name: "stock went out since submission", state: givenState(rental.RequestStatusPending, 3, 5, 3), expectedErr: rental.ErrInsufficientStock},
		{name: "quantity beyond any stock", state: givenState(rental.RequestStatusPending, math.MaxInt, 5, 0), expectedErr: rental.ErrInsufficientStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			calls := 0
			tc.state.RecordIDs = func(n int) ([]uuid.UUID, error) {
				calls++
				return rental.NewRecordIDs(n)
			}

			// act
			result := approverentalrequest.Decide(tc.state, approverentalrequest.BuildCommand(rental.Librarian(uuid.New()), tc.state.Request.ID, time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.Zero(t, calls, "no record ids may be generated for a rejected approval")
		})
	}
}
