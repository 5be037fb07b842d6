package registeritem_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/gear-rental-go/features/command/registeritem"
	"github.com/AntonStoeckl/gear-rental-go/rental"
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		quantity    int
		expectedErr error
	}{
		{name: "valid item", title: "Tent", quantity: 3},
		{name: "maximum quantity", title: "Carabiner", quantity: rental.MaxItemQuantity},
		{name: "empty title", title: " ", quantity: 3, expectedErr: rental.ErrInvalidInput},
		{name: "zero quantity", title: "Tent", quantity: 0, expectedErr: rental.ErrInvalidInput},
		{name: "quantity too large", title: "Tent", quantity: rental.MaxItemQuantity + 1, expectedErr: rental.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := registeritem.BuildCommand(
				rental.Librarian(uuid.New()), uuid.New(), uuid.NullUUID{}, tc.title, "", "", tc.quantity, time.Now())

			// act
			result := registeritem.Decide(command)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
				return
			}

			assert.True(t, result.HasEventToAppend())
		})
	}
}
