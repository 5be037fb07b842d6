package approveaccessrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of approving a collection access request.
//
// Business Rules:
//
//	GIVEN: A locked access request
//	WHEN: ApproveAccessRequest command is received
//	THEN: AccessRequestApproved event is generated and the patron becomes an allowed user
//	ERROR: InvalidState if the request is not pending
func Decide(request rental.CollectionAccessRequest, command Command) core.DecisionResult {
	if request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(rental.NewInvalidState("access request", request.ID, string(request.Status)))
	}

	return core.SuccessDecision(
		core.BuildAccessRequestApproved(
			request.ID,
			request.CollectionID,
			request.PatronID,
			command.Actor.ID,
			command.OccurredAt))
}
