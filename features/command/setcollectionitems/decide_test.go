package setcollectionitems_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/setcollectionitems"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

func Test_Decide(t *testing.T) {
	librarian := rental.Librarian(uuid.New())
	kept := uuid.New()
	dropped := uuid.New()
	added := uuid.New()
	collection := rental.Collection{ID: uuid.New(), Title: "Camping", CreatedBy: uuid.New()}

	t.Run("replaces the set", func(t *testing.T) {
		// arrange
		state := setcollectionitems.State{
			Collection:     collection,
			CurrentItemIDs: []uuid.UUID{kept, dropped},
			Plan:           rental.MembershipPlan{Link: []uuid.UUID{added}},
		}
		command := setcollectionitems.BuildCommand(librarian, collection.ID, []uuid.UUID{kept, added}, time.Now())

		// act
		result := setcollectionitems.Decide(state, command)

		// assert
		require.NoError(t, result.HasError())
		event, ok := result.Event.(core.CollectionItemsReplaced)
		require.True(t, ok)
		assert.Equal(t, []string{dropped.String()}, event.RemovedItemIDs)
		assert.ElementsMatch(t, []string{kept.String(), added.String()}, event.ItemIDs)
	})

	t.Run("same set is idempotent", func(t *testing.T) {
		// arrange
		state := setcollectionitems.State{Collection: collection, CurrentItemIDs: []uuid.UUID{kept}}
		command := setcollectionitems.BuildCommand(librarian, collection.ID, []uuid.UUID{kept}, time.Now())

		// act
		result := setcollectionitems.Decide(state, command)

		// assert
		assert.True(t, result.IsIdempotent())
	})

	t.Run("guard violation rejects the whole write", func(t *testing.T) {
		// arrange
		state := setcollectionitems.State{
			Collection: collection,
			Plan:       rental.MembershipPlan{Link: []uuid.UUID{added}},
			PlanErr:    rental.NewBelongsToPrivateCollection("Tent", "Staff"),
		}
		command := setcollectionitems.BuildCommand(librarian, collection.ID, []uuid.UUID{kept, added}, time.Now())

		// act
		result := setcollectionitems.Decide(state, command)

		// assert
		assert.ErrorIs(t, result.HasError(), rental.ErrBelongsToPrivateCollection)
	})

	t.Run("patron who is not the creator", func(t *testing.T) {
		// arrange
		state := setcollectionitems.State{Collection: collection}
		command := setcollectionitems.BuildCommand(rental.PatronActor(uuid.New()), collection.ID, nil, time.Now())

		// act
		result := setcollectionitems.Decide(state, command)

		// assert
		assert.ErrorIs(t, result.HasError(), rental.ErrForbidden)
	})
}
