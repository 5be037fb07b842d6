package currentlyborrowed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/query/currentlyborrowed"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := currentlyborrowed.NewQueryHandler(engine)
	tent := GivenItem(t, engine, "Tent", 5)
	stove := GivenItem(t, engine, "Stove", 5)
	ada := GivenPatron(t, engine, "Ada")
	bob := GivenPatron(t, engine, "Bob")
	GivenOpenBorrows(t, engine, tent.ID, ada.ID, 2, FixedTime.Add(time.Hour))
	GivenOpenBorrows(t, engine, stove.ID, ada.ID, 1, FixedTime.Add(2*time.Hour))
	GivenOpenBorrows(t, engine, tent.ID, bob.ID, 3, FixedTime)

	t.Run("all patrons", func(t *testing.T) {
		// act
		result, err := handler.Handle(context.Background(), currentlyborrowed.BuildQuery())

		// assert
		require.NoError(t, err)
		assert.Equal(t, 6, result.TotalUnits)
		require.Len(t, result.Borrowed, 3)
		assert.Equal(t, bob.ID, result.Borrowed[0].PatronID, "oldest loan first")
		assert.Equal(t, 3, result.Borrowed[0].Count)
	})

	t.Run("one patron", func(t *testing.T) {
		// act
		result, err := handler.Handle(context.Background(), currentlyborrowed.BuildQueryForPatron(ada.ID))

		// assert
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalUnits)
		require.Len(t, result.Borrowed, 2)
		assert.Equal(t, "Tent", result.Borrowed[0].ItemTitle)
		assert.Equal(t, FixedTime.Add(time.Hour), result.Borrowed[0].EarliestBorrowedAt)
		assert.Equal(t, "Stove", result.Borrowed[1].ItemTitle)
	})
}

func Test_QueryHandler_Handle_Empty(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := currentlyborrowed.NewQueryHandler(engine)

	// act
	result, err := handler.Handle(context.Background(), currentlyborrowed.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Borrowed)
	assert.Equal(t, 0, result.TotalUnits)
}
