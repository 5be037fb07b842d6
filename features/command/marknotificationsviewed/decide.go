package marknotificationsviewed

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of marking notifications as viewed.
//
// Business Rules:
//
//	WHEN: MarkNotificationsViewed command is received
//	THEN: NotificationsViewed event is generated
//	ERROR: InvalidInput if neither rentals nor access requests are marked
func Decide(command Command) core.DecisionResult {
	if !command.Rentals && !command.AccessRequests {
		return core.ErrorDecision(rental.NewInvalidInput("Nothing to mark as viewed."))
	}

	return core.SuccessDecision(
		core.BuildNotificationsViewed(command.Actor.ID, command.Rentals, command.AccessRequests, command.OccurredAt))
}
