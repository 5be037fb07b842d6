package submitaccessrequest

import (
	"fmt"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked collection and whether the patron already waits for a decision on it.
type State struct {
	Collection        rental.Collection
	HasPendingRequest bool
}

// Decide implements the business logic of requesting access to a private collection.
//
// Business Rules:
//
//	GIVEN: A locked collection
//	WHEN: SubmitAccessRequest command is received
//	THEN: AccessRequestSubmitted event is generated
//	ERROR: InvalidInput if the collection is public
//	ERROR: InvalidState if the patron created the collection or is already allowed
//	ERROR: DuplicateRequest if the patron has a pending request for the collection
func Decide(state State, command Command) core.DecisionResult {
	collection := state.Collection

	if !collection.IsPrivate {
		return core.ErrorDecision(rental.NewInvalidInput(
			fmt.Sprintf("The collection '%s' is public and needs no access request.", collection.Title)))
	}

	if collection.CreatedBy == command.Actor.ID || collection.Allows(command.Actor.ID) {
		return core.ErrorDecision(rental.NewInvalidStateMessage(
			fmt.Sprintf("You already have access to '%s'.", collection.Title)))
	}

	if state.HasPendingRequest {
		return core.ErrorDecision(rental.NewDuplicateRequest(collection.Title))
	}

	return core.SuccessDecision(
		core.BuildAccessRequestSubmitted(command.RequestID, collection.ID, command.Actor.ID, command.OccurredAt))
}
