package addcollectionitem_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/addcollectionitem"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_AddsItemToPublicCollection(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := addcollectionitem.NewCommandHandler(engine)
	creator := GivenPatron(t, engine, "Ada")
	tent := GivenItem(t, engine, "Tent", 1)
	collection := GivenCollection(t, engine, "Camping", false, creator.ID)

	// act
	result, err := handler.Handle(context.Background(), addcollectionitem.BuildCommand(rental.PatronActor(creator.ID), collection.ID, tent.ID, FixedTime))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, []uuid.UUID{tent.ID}, LoadCollectionItemIDs(t, engine, collection.ID))
}

func Test_CommandHandler_Handle_PrivateTargetEvictsFromPublicCollections(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := addcollectionitem.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 1)
	camping := GivenCollection(t, engine, "Camping", false, librarian.ID, tent.ID)
	hiking := GivenCollection(t, engine, "Hiking", false, librarian.ID, tent.ID)
	staff := GivenCollection(t, engine, "Staff", true, librarian.ID)

	// act
	result, err := handler.Handle(context.Background(), addcollectionitem.BuildCommand(librarian, staff.ID, tent.ID, FixedTime))

	// assert
	require.NoError(t, err)

	event, ok := result.Event.(core.ItemAddedToCollection)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{camping.ID.String(), hiking.ID.String()}, event.EvictedFrom)

	assert.Equal(t, []uuid.UUID{tent.ID}, LoadCollectionItemIDs(t, engine, staff.ID))
	assert.Empty(t, LoadCollectionItemIDs(t, engine, camping.ID))
	assert.Empty(t, LoadCollectionItemIDs(t, engine, hiking.ID))
}

func Test_CommandHandler_Handle_IdempotentWhenAlreadyMember(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := addcollectionitem.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 1)
	staff := GivenCollection(t, engine, "Staff", true, librarian.ID, tent.ID)

	// act
	result, err := handler.Handle(context.Background(), addcollectionitem.BuildCommand(librarian, staff.ID, tent.ID, FixedTime))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Nil(t, result.Event)
}

func Test_CommandHandler_Handle_Error(t *testing.T) {
	testCases := []struct {
		name            string
		targetIsPrivate bool
		notCreator      bool
		expectedErr     error
		expectedMessage string
	}{
		{
			name:            "second private collection",
			targetIsPrivate: true,
			expectedErr:     rental.ErrAlreadyInCollection,
			expectedMessage: "Item 'Tent' already belongs to the private collection 'Staff'; it cannot be added to another private collection.",
		},
		{
			name:            "public collection",
			expectedErr:     rental.ErrBelongsToPrivateCollection,
			expectedMessage: "Item 'Tent' belongs to the private collection 'Staff'; it cannot be added to a public collection.",
		},
		{
			name:        "patron edits foreign collection",
			notCreator:  true,
			expectedErr: rental.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			engine := NewMemoryEngine(t)
			handler := addcollectionitem.NewCommandHandler(engine)
			creator := GivenPatron(t, engine, "Ada")
			tent := GivenItem(t, engine, "Tent", 1)
			GivenCollection(t, engine, "Staff", true, GivenUniqueID(t), tent.ID)
			target := GivenCollection(t, engine, "Target", tc.targetIsPrivate, creator.ID)

			actor := rental.Librarian(GivenUniqueID(t))
			if tc.notCreator {
				actor = rental.PatronActor(GivenUniqueID(t))
			}

			// act
			_, err := handler.Handle(context.Background(), addcollectionitem.BuildCommand(actor, target.ID, tent.ID, FixedTime))

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedMessage != "" {
				assert.EqualError(t, err, tc.expectedMessage)
			}

			assert.Empty(t, LoadCollectionItemIDs(t, engine, target.ID))
		})
	}
}
