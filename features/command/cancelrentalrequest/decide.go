package cancelrentalrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of canceling a rental request.
//
// Business Rules:
//
//	GIVEN: A locked rental request
//	WHEN: CancelRentalRequest command is received
//	THEN: RentalRequestCanceled event is generated
//	ERROR: Forbidden if the actor did not submit the request
//	ERROR: InvalidState if the request is not pending
func Decide(request rental.RentalRequest, command Command) core.DecisionResult {
	if request.PatronID != command.Actor.ID {
		return core.ErrorDecision(rental.NewForbidden("cancel this rental request"))
	}

	if request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(rental.NewInvalidState("rental request", request.ID, string(request.Status)))
	}

	return core.SuccessDecision(
		core.BuildRentalRequestCanceled(request.ID, request.ItemID, request.PatronID, command.OccurredAt))
}
