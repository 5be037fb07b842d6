package denyrentalrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of denying a rental request.
//
// Business Rules:
//
//	GIVEN: A locked rental request
//	WHEN: DenyRentalRequest command is received
//	THEN: RentalRequestDenied event is generated
//	ERROR: InvalidState if the request is not pending
func Decide(request rental.RentalRequest, command Command) core.DecisionResult {
	if request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(rental.NewInvalidState("rental request", request.ID, string(request.Status)))
	}

	return core.SuccessDecision(
		core.BuildRentalRequestDenied(
			request.ID,
			request.ItemID,
			request.PatronID,
			command.Actor.ID,
			command.OccurredAt))
}
