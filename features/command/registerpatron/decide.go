package registerpatron

import (
	"strings"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is what the handler loaded before deciding.
type State struct {
	Existing *rental.Patron
}

// Decide implements the business logic of registering a user profile.
//
// Business Rules:
//
//	GIVEN: A profile id, name and role
//	WHEN: RegisterPatron command is received
//	THEN: PatronRegistered event is generated
//	ERROR: InvalidInput if the name is empty or the role is unknown
//	ERROR: InvalidState if the id is already registered with different data
//	IDEMPOTENCY: If the id is registered with the same name and role, no event generated (no-op)
func Decide(state State, command Command) core.DecisionResult {
	name := strings.TrimSpace(command.Name)

	if name == "" {
		return core.ErrorDecision(rental.NewInvalidInput("Name must not be empty."))
	}

	switch command.Role {
	case rental.RoleLibrarian, rental.RolePatron:
	default:
		return core.ErrorDecision(rental.NewInvalidInput("Role must be librarian or patron."))
	}

	if state.Existing != nil {
		if state.Existing.Name == name && state.Existing.Role == command.Role {
			return core.IdempotentDecision()
		}

		return core.ErrorDecision(rental.NewInvalidStateMessage(
			"The user " + command.PatronID.String() + " is already registered with a different name or role."))
	}

	return core.SuccessDecision(
		core.BuildPatronRegistered(command.PatronID, name, command.Role.String(), command.OccurredAt))
}
