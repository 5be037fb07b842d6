package recordborrow

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is what Decide needs to know about the locked item.
// RecordIDs is asked for one id per unit after the stock check; nil means rental.NewRecordIDs.
type State struct {
	Item        rental.Item
	OpenBorrows int
	RecordIDs   rental.RecordIDSource
}

// Decide implements the business logic of lending units without a rental request.
//
// Business Rules:
//
//	GIVEN: A locked item and its current open borrow count
//	WHEN: RecordBorrow command is received
//	THEN: BorrowRecorded event is generated with one record id per unit
//	ERROR: InvalidInput if the quantity is below 1
//	ERROR: InsufficientStock if fewer units are available than requested
func Decide(state State, command Command) core.DecisionResult {
	if command.Quantity < 1 {
		return core.ErrorDecision(rental.NewInvalidInput("Quantity must be at least 1."))
	}

	stock := rental.Stock{Quantity: state.Item.Quantity, OpenBorrows: state.OpenBorrows}
	if !stock.CanLend(command.Quantity) {
		return core.ErrorDecision(rental.NewInsufficientStock(state.Item.Title, command.Quantity, stock.Available()))
	}

	recordIDs, err := state.RecordIDs.Generate(command.Quantity)
	if err != nil {
		return core.ErrorDecision(err)
	}

	after := stock.Lend(command.Quantity)

	return core.SuccessDecision(
		core.BuildBorrowRecorded(
			state.Item.ID,
			command.PatronID,
			command.Actor.ID,
			recordIDs,
			after.Available(),
			string(after.Status()),
			command.OccurredAt))
}
