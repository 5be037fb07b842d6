package gearcatalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/query/gearcatalog"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func entryIDs(catalog gearcatalog.GearCatalog) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(catalog.Entries))
	for _, e := range catalog.Entries {
		ids = append(ids, e.ID())
	}

	return ids
}

func Test_QueryHandler_Handle_Visibility(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := gearcatalog.NewQueryHandler(engine)

	librarian := GivenLibrarian(t, engine, "Lin")
	owner := GivenPatron(t, engine, "Ada")
	guest := GivenPatron(t, engine, "Bob")
	stranger := GivenPatron(t, engine, "Cy")

	library := GivenLibrary(t, engine, "North")
	rope := GivenItem(t, engine, "Rope", 1)
	tent := GivenItem(t, engine, "Tent", 1)
	radio := GivenItem(t, engine, "Radio", 1)

	hiking := GivenCollection(t, engine, "Hiking", false, librarian.ID, tent.ID)
	secret := GivenCollection(t, engine, "Secret", true, owner.ID, radio.ID)
	GivenAllowedUser(t, engine, secret.ID, guest.ID)

	everything := []uuid.UUID{library.ID, hiking.ID, secret.ID, radio.ID, rope.ID, tent.ID}
	public := []uuid.UUID{library.ID, hiking.ID, rope.ID, tent.ID}

	testCases := []struct {
		name     string
		actor    rental.Actor
		expected []uuid.UUID
	}{
		{name: "librarian sees everything", actor: rental.Librarian(librarian.ID), expected: everything},
		{name: "creator sees the private collection", actor: rental.PatronActor(owner.ID), expected: everything},
		{name: "allowed user sees the private collection", actor: rental.PatronActor(guest.ID), expected: everything},
		{name: "other patron sees public gear only", actor: rental.PatronActor(stranger.ID), expected: public},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(context.Background(), gearcatalog.BuildQuery(tc.actor))

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entryIDs(result))
		})
	}
}

func Test_QueryHandler_Handle_FiltersByKind(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := gearcatalog.NewQueryHandler(engine)
	patron := GivenPatron(t, engine, "Ada")
	GivenLibrary(t, engine, "North")
	stove := GivenItem(t, engine, "Stove", 1)
	axe := GivenItem(t, engine, "Axe", 1)
	GivenCollection(t, engine, "Cooking", false, patron.ID, stove.ID)

	// act
	result, err := handler.Handle(context.Background(), gearcatalog.BuildQuery(rental.PatronActor(patron.ID), rental.GearKindItem))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, []uuid.UUID{axe.ID, stove.ID}, entryIDs(result))

	for _, e := range result.Entries {
		assert.Equal(t, rental.GearKindItem, e.Kind)
		require.NotNil(t, e.Item)
	}
}
