package submitaccessrequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/submitaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := submitaccessrequest.NewCommandHandler(engine)
	patron := GivenPatron(t, engine, "Ada")
	staff := GivenCollection(t, engine, "Staff", true, GivenUniqueID(t))
	requestID := GivenUniqueID(t)

	// act
	_, err := handler.Handle(context.Background(), submitaccessrequest.BuildCommand(rental.PatronActor(patron.ID), requestID, staff.ID, FixedTime))

	// assert
	require.NoError(t, err)

	request, err := LoadAccessRequest(t, engine, requestID)
	require.NoError(t, err)
	assert.Equal(t, rental.RequestStatusPending, request.Status)
	assert.Equal(t, patron.ID, request.PatronID)
	assert.Equal(t, staff.ID, request.CollectionID)
}

func Test_CommandHandler_Handle_Error(t *testing.T) {
	testCases := []struct {
		name            string
		arrange         func(t *testing.T, engine Engine, patron rental.Patron) rental.Collection
		expectedErr     error
		expectedMessage string
	}{
		{
			name: "public collection",
			arrange: func(t *testing.T, engine Engine, _ rental.Patron) rental.Collection {
				return GivenCollection(t, engine, "Camping", false, GivenUniqueID(t))
			},
			expectedErr:     rental.ErrInvalidInput,
			expectedMessage: "The collection 'Camping' is public and needs no access request.",
		},
		{
			name: "already allowed",
			arrange: func(t *testing.T, engine Engine, patron rental.Patron) rental.Collection {
				staff := GivenCollection(t, engine, "Staff", true, GivenUniqueID(t))
				GivenAllowedUser(t, engine, staff.ID, patron.ID)

				return staff
			},
			expectedErr:     rental.ErrInvalidState,
			expectedMessage: "You already have access to 'Staff'.",
		},
		{
			name: "own collection",
			arrange: func(t *testing.T, engine Engine, patron rental.Patron) rental.Collection {
				return GivenCollection(t, engine, "Staff", true, patron.ID)
			},
			expectedErr: rental.ErrInvalidState,
		},
		{
			name: "pending request exists",
			arrange: func(t *testing.T, engine Engine, patron rental.Patron) rental.Collection {
				staff := GivenCollection(t, engine, "Staff", true, GivenUniqueID(t))
				GivenPendingAccessRequest(t, engine, staff.ID, patron.ID)

				return staff
			},
			expectedErr:     rental.ErrDuplicateRequest,
			expectedMessage: "You already have a pending request for 'Staff'.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			engine := NewMemoryEngine(t)
			handler := submitaccessrequest.NewCommandHandler(engine)
			patron := GivenPatron(t, engine, "Ada")
			collection := tc.arrange(t, engine, patron)

			// act
			_, err := handler.Handle(context.Background(), submitaccessrequest.BuildCommand(rental.PatronActor(patron.ID), GivenUniqueID(t), collection.ID, FixedTime))

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedMessage != "" {
				assert.EqualError(t, err, tc.expectedMessage)
			}
		})
	}
}

func Test_CommandHandler_Handle_Error_Forbidden_ForLibrarian(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := submitaccessrequest.NewCommandHandler(engine)
	staff := GivenCollection(t, engine, "Staff", true, GivenUniqueID(t))

	// act
	_, err := handler.Handle(context.Background(), submitaccessrequest.BuildCommand(rental.Librarian(GivenUniqueID(t)), GivenUniqueID(t), staff.ID, FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrForbidden)
}
