package returnborrowedunits

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked item together with the patron's outstanding units.
// Locked holds the oldest open records of the patron that were locked for this return.
type State struct {
	Item        rental.Item
	PatronName  string
	OpenBorrows int
	Outstanding int
	Locked      []rental.BorrowRecord
}

// Decide implements the business logic of the Return Processor.
//
// Business Rules:
//
//	GIVEN: A locked item and the patron's oldest open borrow records, locked
//	WHEN: ReturnBorrowedUnits command is received
//	THEN: BorrowedUnitsReturned event is generated closing the locked records
//	ERROR: InvalidInput if the quantity is below 1
//	ERROR: NoOpenBorrow if the patron has no open records of the item
//	ERROR: ExceedsOutstanding if the quantity is larger than the open record count
//	ERROR: Conflict if fewer records could be locked than are returned
func Decide(state State, command Command) core.DecisionResult {
	if err := ValidateQuantity(command.Quantity); err != nil {
		return core.ErrorDecision(err)
	}

	if state.Outstanding == 0 {
		return core.ErrorDecision(rental.NewNoOpenBorrow(state.Item.Title, state.PatronName))
	}

	if command.Quantity > state.Outstanding {
		return core.ErrorDecision(
			rental.NewExceedsOutstanding(command.Quantity, state.Outstanding, state.Item.Title, state.PatronName))
	}

	if len(state.Locked) != command.Quantity {
		return core.ErrorDecision(rental.NewConflict(
			fmt.Sprintf("expected %d open borrow record(s), locked %d", command.Quantity, len(state.Locked))))
	}

	recordIDs := make([]uuid.UUID, 0, len(state.Locked))
	for _, r := range state.Locked {
		recordIDs = append(recordIDs, r.ID)
	}

	after := rental.Stock{Quantity: state.Item.Quantity, OpenBorrows: state.OpenBorrows}.Return(command.Quantity)

	return core.SuccessDecision(
		core.BuildBorrowedUnitsReturned(
			state.Item.ID,
			command.PatronID,
			command.Actor.ID,
			recordIDs,
			after.Available(),
			string(after.Status()),
			command.OccurredAt))
}

// ValidateQuantity is the first check of a return, before the patron or item is looked up.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return rental.NewInvalidInput("Quantity to return must be at least 1.")
	}

	return nil
}
