package setcollectionitems_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/setcollectionitems"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_ReplacesItemsAndEvictsFromPublicCollections(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := setcollectionitems.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 1)
	stove := GivenItem(t, engine, "Stove", 1)
	lamp := GivenItem(t, engine, "Lamp", 1)
	camping := GivenCollection(t, engine, "Camping", false, librarian.ID, stove.ID)
	staff := GivenCollection(t, engine, "Staff", true, librarian.ID, tent.ID, lamp.ID)

	// act
	_, err := handler.Handle(context.Background(), setcollectionitems.BuildCommand(librarian, staff.ID, []uuid.UUID{tent.ID, stove.ID}, FixedTime))

	// assert
	require.NoError(t, err)
	assert.Equal(t, rental.SortedUniqueIDs([]uuid.UUID{tent.ID, stove.ID}), LoadCollectionItemIDs(t, engine, staff.ID))
	assert.Empty(t, LoadCollectionItemIDs(t, engine, camping.ID), "stove must leave the public collection")
}

func Test_CommandHandler_Handle_AnyViolationRejectsTheWholeWrite(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := setcollectionitems.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 1)
	stove := GivenItem(t, engine, "Stove", 1)
	lamp := GivenItem(t, engine, "Lamp", 1)
	GivenCollection(t, engine, "Staff", true, librarian.ID, lamp.ID)
	camping := GivenCollection(t, engine, "Camping", false, librarian.ID, tent.ID)

	// act
	_, err := handler.Handle(context.Background(), setcollectionitems.BuildCommand(librarian, camping.ID, []uuid.UUID{stove.ID, lamp.ID}, FixedTime))

	// assert
	assert.ErrorIs(t, err, rental.ErrBelongsToPrivateCollection)
	assert.Equal(t, []uuid.UUID{tent.ID}, LoadCollectionItemIDs(t, engine, camping.ID))
}

func Test_CommandHandler_Handle_CreatorMayEmptyTheirCollection(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := setcollectionitems.NewCommandHandler(engine)
	creator := GivenPatron(t, engine, "Ada")
	tent := GivenItem(t, engine, "Tent", 1)
	camping := GivenCollection(t, engine, "Camping", false, creator.ID, tent.ID)

	// act
	result, err := handler.Handle(context.Background(), setcollectionitems.BuildCommand(rental.PatronActor(creator.ID), camping.ID, nil, FixedTime))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Empty(t, LoadCollectionItemIDs(t, engine, camping.ID))
}

func Test_CommandHandler_Handle_IdempotentForSameSet(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := setcollectionitems.NewCommandHandler(engine)
	librarian := rental.Librarian(GivenUniqueID(t))
	tent := GivenItem(t, engine, "Tent", 1)
	camping := GivenCollection(t, engine, "Camping", false, librarian.ID, tent.ID)

	// act
	result, err := handler.Handle(context.Background(), setcollectionitems.BuildCommand(librarian, camping.ID, []uuid.UUID{tent.ID, tent.ID}, FixedTime))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}
