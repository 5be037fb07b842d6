package rentalrequestsbystatus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/query/rentalrequestsbystatus"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_BuildQuery_RejectsUnknownStatus(t *testing.T) {
	// act
	_, err := rentalrequestsbystatus.BuildQuery("lost", uuid.NullUUID{})

	// assert
	require.ErrorIs(t, err, rental.ErrInvalidInput)
	assert.EqualError(t, err, "Unknown request status 'lost'.")
}

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := rentalrequestsbystatus.NewQueryHandler(engine)
	item := GivenItem(t, engine, "Tent", 5)
	ada := GivenPatron(t, engine, "Ada")
	bob := GivenPatron(t, engine, "Bob")

	pending := GivenPendingRentalRequest(t, engine, item.ID, ada.ID, 2)
	older := GivenDecidedRentalRequest(t, engine, item.ID, ada.ID, rental.RequestStatusApproved, FixedTime.Add(-48*time.Hour))
	newer := GivenDecidedRentalRequest(t, engine, item.ID, ada.ID, rental.RequestStatusApproved, FixedTime.Add(-24*time.Hour))
	GivenDecidedRentalRequest(t, engine, item.ID, bob.ID, rental.RequestStatusRejected, FixedTime)

	t.Run("approved requests of one patron, newest first", func(t *testing.T) {
		// arrange
		query, err := rentalrequestsbystatus.BuildQuery("approved", uuid.NullUUID{UUID: ada.ID, Valid: true})
		require.NoError(t, err)

		// act
		result, err := handler.Handle(context.Background(), query)

		// assert
		require.NoError(t, err)
		require.Len(t, result.Requests, 2)
		assert.Equal(t, newer.ID, result.Requests[0].RequestID)
		assert.Equal(t, older.ID, result.Requests[1].RequestID)
		assert.Equal(t, rentalrequestsbystatus.StatusCounts{Pending: 1, Approved: 2}, result.Counts)
	})

	t.Run("all requests", func(t *testing.T) {
		// arrange
		query, err := rentalrequestsbystatus.BuildQuery("", uuid.NullUUID{})
		require.NoError(t, err)

		// act
		result, err := handler.Handle(context.Background(), query)

		// assert
		require.NoError(t, err)
		assert.Len(t, result.Requests, 4)
		assert.Equal(t, pending.ID, result.Requests[0].RequestID, "the pending request was created last")
		assert.Equal(t, rentalrequestsbystatus.StatusCounts{Pending: 1, Approved: 2, Rejected: 1}, result.Counts)
	})
}
