package createcollection_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/createcollection"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

func Test_Decide_Success_ReportsEvictions(t *testing.T) {
	// arrange
	itemID := uuid.New()
	publicID := uuid.New()
	state := createcollection.State{Plan: rental.MembershipPlan{
		Link:  []uuid.UUID{itemID},
		Evict: []rental.CollectionItem{{CollectionID: publicID, ItemID: itemID}},
	}}
	command := createcollection.BuildCommand(
		rental.Librarian(uuid.New()), uuid.New(), "  Staff only ", "", true, []uuid.UUID{itemID}, nil, time.Now())

	// act
	result := createcollection.Decide(state, command)

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.CollectionCreated)
	require.True(t, ok)
	assert.Equal(t, "Staff only", event.Title)
	assert.Equal(t, []string{itemID.String()}, event.ItemIDs)
	assert.Equal(t, []core.Eviction{core.BuildEviction(itemID, publicID)}, event.Evictions)
}

func Test_Decide_Error(t *testing.T) {
	guardErr := rental.NewAlreadyInCollection("Tent", "Staff")

	testCases := []struct {
		name        string
		actor       rental.Actor
		title       string
		isPrivate   bool
		planErr     error
		expectedErr error
	}{
		{name: "patron creates private collection", actor: rental.PatronActor(uuid.New()), title: "Mine", isPrivate: true, expectedErr: rental.ErrForbidden},
		{name: "empty title", actor: rental.PatronActor(uuid.New()), title: "   ", expectedErr: rental.ErrInvalidInput},
		{name: "guard violation", actor: rental.Librarian(uuid.New()), title: "Other", isPrivate: true, planErr: guardErr, expectedErr: rental.ErrAlreadyInCollection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := createcollection.BuildCommand(tc.actor, uuid.New(), tc.title, "", tc.isPrivate, nil, nil, time.Now())

			// act
			result := createcollection.Decide(createcollection.State{PlanErr: tc.planErr}, command)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
