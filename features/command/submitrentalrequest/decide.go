package submitrentalrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked item, its open borrow count and whether the patron already waits for it.
type State struct {
	Item              rental.Item
	OpenBorrows       int
	HasPendingRequest bool
}

// Decide implements the business logic of submitting a rental request.
//
// Business Rules:
//
//	GIVEN: A locked item with its open borrow count
//	WHEN: SubmitRentalRequest command is received
//	THEN: RentalRequestSubmitted event is generated
//	ERROR: InvalidInput if the quantity is lower than 1
//	ERROR: DuplicateRequest if the patron already has a pending request for the item
//	ERROR: InsufficientStock if the quantity exceeds the available quantity
func Decide(state State, command Command) core.DecisionResult {
	if command.Quantity < 1 {
		return core.ErrorDecision(rental.NewInvalidInput("Quantity must be at least 1."))
	}

	if state.HasPendingRequest {
		return core.ErrorDecision(rental.NewDuplicateRequest(state.Item.Title))
	}

	stock := rental.Stock{Quantity: state.Item.Quantity, OpenBorrows: state.OpenBorrows}
	if !stock.CanLend(command.Quantity) {
		return core.ErrorDecision(rental.NewInsufficientStock(state.Item.Title, command.Quantity, stock.Available()))
	}

	return core.SuccessDecision(
		core.BuildRentalRequestSubmitted(
			command.RequestID,
			state.Item.ID,
			command.Actor.ID,
			command.Quantity,
			command.OccurredAt))
}
