package itemactivity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/changeitemquantity"
	"github.com/AntonStoeckl/gear-rental-go/features/command/recordborrow"
	"github.com/AntonStoeckl/gear-rental-go/features/query/itemactivity"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := itemactivity.NewQueryHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 3)
	stove := GivenItem(t, engine, "Stove", 3)
	ada := GivenPatron(t, engine, "Ada")

	_, err := recordborrow.NewCommandHandler(engine).Handle(ctx,
		recordborrow.BuildCommand(librarian, tent.ID, ada.ID, 2, FixedTime))
	require.NoError(t, err)

	_, err = changeitemquantity.NewCommandHandler(engine).Handle(ctx,
		changeitemquantity.BuildCommand(librarian, tent.ID, 4, FixedTime.Add(time.Hour)))
	require.NoError(t, err)

	_, err = recordborrow.NewCommandHandler(engine).Handle(ctx,
		recordborrow.BuildCommand(librarian, stove.ID, ada.ID, 1, FixedTime))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, itemactivity.BuildQuery(tent.ID))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, core.BorrowRecordedEventType, result.Entries[0].EventType)
	borrowed, ok := result.Entries[0].Event.(core.BorrowRecorded)
	require.True(t, ok)
	assert.Equal(t, 2, borrowed.Quantity)
	assert.Equal(t, tent.ID.String(), borrowed.ItemID)

	assert.Equal(t, core.ItemQuantityChangedEventType, result.Entries[1].EventType)
	assert.Equal(t, FixedTime.Add(time.Hour), result.Entries[1].OccurredAt)
}

func Test_QueryHandler_Handle_NotFound(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := itemactivity.NewQueryHandler(engine)

	// act
	_, err := handler.Handle(context.Background(), itemactivity.BuildQuery(GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, rental.ErrNotFound)
}
