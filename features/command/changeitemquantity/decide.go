package changeitemquantity

import (
	"fmt"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked item together with its open borrow count.
type State struct {
	Item        rental.Item
	OpenBorrows int
}

// Decide implements the business logic of changing the quantity of an item.
//
// Business Rules:
//
//	GIVEN: A locked item and its open borrow count
//	WHEN: ChangeItemQuantity command is received
//	THEN: ItemQuantityChanged event is generated with the recomputed availability
//	ERROR: InvalidInput if the quantity is not between 1 and rental.MaxItemQuantity
//	ERROR: InvalidInput if the quantity is lower than the number of units on loan
//	IDEMPOTENCY: If the quantity does not change, no event generated (no-op)
func Decide(state State, command Command) core.DecisionResult {
	if err := rental.ValidateItemQuantity(command.Quantity); err != nil {
		return core.ErrorDecision(err)
	}

	if command.Quantity == state.Item.Quantity {
		return core.IdempotentDecision()
	}

	if command.Quantity < state.OpenBorrows {
		return core.ErrorDecision(rental.NewInvalidInput(fmt.Sprintf(
			"Quantity of '%s' cannot be lower than the %d unit(s) currently borrowed.",
			state.Item.Title, state.OpenBorrows)))
	}

	stock := rental.Stock{Quantity: state.Item.Quantity, OpenBorrows: state.OpenBorrows}.WithQuantity(command.Quantity)

	return core.SuccessDecision(
		core.BuildItemQuantityChanged(
			state.Item.ID,
			state.Item.Quantity,
			stock.Quantity,
			stock.Available(),
			string(stock.Status()),
			command.Actor.ID,
			command.OccurredAt))
}
