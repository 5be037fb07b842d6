package cancelaccessrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of canceling a collection access request.
//
// Business Rules:
//
//	GIVEN: A locked access request
//	WHEN: CancelAccessRequest command is received
//	THEN: AccessRequestCanceled event is generated
//	ERROR: Forbidden if the actor did not submit the request
//	ERROR: InvalidState if the request is not pending
func Decide(request rental.CollectionAccessRequest, command Command) core.DecisionResult {
	if request.PatronID != command.Actor.ID {
		return core.ErrorDecision(rental.NewForbidden("cancel this access request"))
	}

	if request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(rental.NewInvalidState("access request", request.ID, string(request.Status)))
	}

	return core.SuccessDecision(
		core.BuildAccessRequestCanceled(request.ID, request.CollectionID, request.PatronID, command.OccurredAt))
}
