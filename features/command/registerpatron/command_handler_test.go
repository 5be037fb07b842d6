package registerpatron_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/features/command/registerpatron"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := registerpatron.NewCommandHandler(engine)
	patronID := GivenUniqueID(t)
	command := registerpatron.BuildCommand(rental.Librarian(GivenUniqueID(t)), patronID, "Ada", rental.RolePatron, FixedTime)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.IsType(t, core.PatronRegistered{}, result.Event)

	profile, err := engine.PatronProfile(ctx, patronID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, rental.RolePatron, profile.Role)
}

func Test_CommandHandler_Handle_Idempotent_WhenProfileIsAlreadyRegistered(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := registerpatron.NewCommandHandler(engine)
	patron := GivenPatron(t, engine, "Ada")
	command := registerpatron.BuildCommand(rental.Librarian(GivenUniqueID(t)), patron.ID, "Ada", rental.RolePatron, FixedTime)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Nil(t, result.Event)
}

func Test_CommandHandler_Handle_Forbidden_WhenActorIsPatron(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := NewMemoryEngine(t)
	handler := registerpatron.NewCommandHandler(engine)
	command := registerpatron.BuildCommand(rental.PatronActor(GivenUniqueID(t)), GivenUniqueID(t), "Ada", rental.RolePatron, FixedTime)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, rental.ErrForbidden)
	assert.Equal(t, "violation", result.LastErrorType)
	assert.Equal(t, 1, result.RetryAttempts)
}
