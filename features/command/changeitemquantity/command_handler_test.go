package changeitemquantity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/changeitemquantity"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success_RecomputesStatus(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := changeitemquantity.NewCommandHandler(engine)
	item := GivenItem(t, engine, "Tent", 5)
	patron := GivenPatron(t, engine, "Ada")
	GivenOpenBorrows(t, engine, item.ID, patron.ID, 2, FixedTime)

	// act
	_, err := handler.Handle(ctx, changeitemquantity.BuildCommand(rental.Librarian(GivenUniqueID(t)), item.ID, 2, FixedTime))

	// assert
	require.NoError(t, err)

	stock, err := engine.ItemStock(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Item.Quantity)
	assert.Equal(t, 0, stock.Stock().Available())
	assert.Equal(t, rental.ItemStatusRentedOut, stock.Item.Status)
}

func Test_CommandHandler_Handle_Error_WhenQuantityWouldTurnAvailabilityNegative(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := changeitemquantity.NewCommandHandler(engine)
	item := GivenItem(t, engine, "Tent", 5)
	patron := GivenPatron(t, engine, "Ada")
	GivenOpenBorrows(t, engine, item.ID, patron.ID, 3, FixedTime)

	// act
	_, err := handler.Handle(ctx, changeitemquantity.BuildCommand(rental.Librarian(GivenUniqueID(t)), item.ID, 2, FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrInvalidInput)
	assert.EqualError(t, err, "Quantity of 'Tent' cannot be lower than the 3 unit(s) currently borrowed.")

	stock, err := engine.ItemStock(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.Item.Quantity, "quantity must stay unchanged")
}

func Test_CommandHandler_Handle_Error_WhenItemDoesNotExist(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := changeitemquantity.NewCommandHandler(engine)

	// act
	_, err := handler.Handle(context.Background(), changeitemquantity.BuildCommand(rental.Librarian(GivenUniqueID(t)), GivenUniqueID(t), 2, FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrNotFound)
}
