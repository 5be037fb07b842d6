package denyrentalrequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/denyrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := denyrentalrequest.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	item := GivenItem(t, engine, "Tent", 5)
	patron := GivenPatron(t, engine, "Ada")
	request := GivenPendingRentalRequest(t, engine, item.ID, patron.ID, 2)

	// act
	_, err := handler.Handle(ctx, denyrentalrequest.BuildCommand(librarian, request.ID, FixedTime))

	// assert
	require.NoError(t, err)

	denied, err := LoadRentalRequest(t, engine, request.ID)
	require.NoError(t, err)
	assert.Equal(t, rental.RequestStatusRejected, denied.Status)
	assert.Equal(t, librarian.ID, denied.ApproverID.UUID)
	require.NotNil(t, denied.ApprovedDate)
	assert.Equal(t, FixedTime, *denied.ApprovedDate)

	stock, err := engine.ItemStock(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.OpenBorrows, "denying has no inventory side effects")
}

func Test_CommandHandler_Handle_Error_InvalidState_WhenAlreadyDecided(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := denyrentalrequest.NewCommandHandler(engine)
	item := GivenItem(t, engine, "Tent", 5)
	patron := GivenPatron(t, engine, "Ada")
	request := GivenDecidedRentalRequest(t, engine, item.ID, patron.ID, rental.RequestStatusApproved, FixedTime)

	// act
	_, err := handler.Handle(context.Background(), denyrentalrequest.BuildCommand(rental.Librarian(GivenUniqueID(t)), request.ID, FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrInvalidState)
}

func Test_CommandHandler_Handle_Error_NotFound(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := denyrentalrequest.NewCommandHandler(engine)

	// act
	_, err := handler.Handle(context.Background(), denyrentalrequest.BuildCommand(rental.Librarian(GivenUniqueID(t)), GivenUniqueID(t), FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrNotFound)
}
