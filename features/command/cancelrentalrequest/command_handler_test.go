package cancelrentalrequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success_DeletesRequest(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := cancelrentalrequest.NewCommandHandler(engine)
	item := GivenItem(t, engine, "Tent", 5)
	patron := GivenPatron(t, engine, "Ada")
	request := GivenPendingRentalRequest(t, engine, item.ID, patron.ID, 1)

	// act
	_, err := handler.Handle(context.Background(), cancelrentalrequest.BuildCommand(rental.PatronActor(patron.ID), request.ID, FixedTime))

	// assert
	assert.NoError(t, err)

	_, err = LoadRentalRequest(t, engine, request.ID)
	assert.ErrorIs(t, err, rental.ErrNotFound)
}

func Test_CommandHandler_Handle_Error(t *testing.T) {
	testCases := []struct {
		name        string
		actor       func(owner rental.Patron) rental.Actor
		expectedErr error
	}{
		{
			name:        "another patron",
			actor:       func(rental.Patron) rental.Actor { return rental.PatronActor(GivenUniqueID(t)) },
			expectedErr: rental.ErrForbidden,
		},
		{
			name:        "librarian",
			actor:       func(rental.Patron) rental.Actor { return rental.Librarian(GivenUniqueID(t)) },
			expectedErr: rental.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			engine := NewMemoryEngine(t)
			handler := cancelrentalrequest.NewCommandHandler(engine)
			item := GivenItem(t, engine, "Tent", 5)
			owner := GivenPatron(t, engine, "Ada")
			request := GivenPendingRentalRequest(t, engine, item.ID, owner.ID, 1)

			// act
			_, err := handler.Handle(context.Background(), cancelrentalrequest.BuildCommand(tc.actor(owner), request.ID, FixedTime))

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)

			_, err = LoadRentalRequest(t, engine, request.ID)
			assert.NoError(t, err, "request must still exist")
		})
	}
}
