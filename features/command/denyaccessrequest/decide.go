package denyaccessrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of denying a collection access request.
//
// Business Rules:
//
//	GIVEN: A locked access request
//	WHEN: DenyAccessRequest command is received
//	THEN: AccessRequestDenied event is generated
//	ERROR: InvalidState if the request is not pending
func Decide(request rental.CollectionAccessRequest, command Command) core.DecisionResult {
	if request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(rental.NewInvalidState("access request", request.ID, string(request.Status)))
	}

	return core.SuccessDecision(
		core.BuildAccessRequestDenied(
			request.ID,
			request.CollectionID,
			request.PatronID,
			command.Actor.ID,
			command.OccurredAt))
}
