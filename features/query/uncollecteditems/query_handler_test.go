package uncollecteditems_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/query/uncollecteditems"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handler := uncollecteditems.NewQueryHandler(engine)
	creator := GivenLibrarian(t, engine, "Lin")
	axe := GivenItem(t, engine, "Axe", 2)
	boots := GivenItem(t, engine, "Boots", 2)
	compass := GivenItem(t, engine, "Compass", 2)
	GivenCollection(t, engine, "Hiking", false, creator.ID, boots.ID)
	GivenCollection(t, engine, "Staff", true, creator.ID, compass.ID)
	GivenOpenBorrows(t, engine, axe.ID, GivenPatron(t, engine, "Ada").ID, 1, FixedTime)

	// act
	result, err := handler.Handle(context.Background(), uncollecteditems.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Len(t, result.NotInAnyCollection, 1)
	assert.Equal(t, axe.ID, result.NotInAnyCollection[0].ItemID)
	assert.Equal(t, 1, result.NotInAnyCollection[0].AvailableQuantity)

	require.Len(t, result.NotInPrivateCollection, 2)
	assert.Equal(t, "Axe", result.NotInPrivateCollection[0].Title)
	assert.Equal(t, "Boots", result.NotInPrivateCollection[1].Title)
}
