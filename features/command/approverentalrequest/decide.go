package approverentalrequest

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked request, the locked item and its open borrow count.
// RecordIDs is asked for one id per requested unit after the stock check; nil means rental.NewRecordIDs.
type State struct {
	Request     rental.RentalRequest
	Item        rental.Item
	OpenBorrows int
	RecordIDs   rental.RecordIDSource
}

// Decide implements the business logic of approving a rental request.
//
// Business Rules:
//
//	GIVEN: A locked rental request and the locked item it asks for
//	WHEN: ApproveRentalRequest command is received
//	THEN: RentalRequestApproved event is generated with one borrow record per unit
//	ERROR: InvalidState if the request is not pending
//	ERROR: InsufficientStock if the requested quantity exceeds the current available quantity
func Decide(state State, command Command) core.DecisionResult {
	if state.Request.Status != rental.RequestStatusPending {
		return core.ErrorDecision(
			rental.NewInvalidState("rental request", state.Request.ID, string(state.Request.Status)))
	}

	stock := rental.Stock{Quantity: state.Item.Quantity, OpenBorrows: state.OpenBorrows}
	if !stock.CanLend(state.Request.Quantity) {
		return core.ErrorDecision(
			rental.NewInsufficientStock(state.Item.Title, state.Request.Quantity, stock.Available()))
	}

	recordIDs, err := state.RecordIDs.Generate(state.Request.Quantity)
	if err != nil {
		return core.ErrorDecision(err)
	}

	after := stock.Lend(state.Request.Quantity)

	return core.SuccessDecision(
		core.BuildRentalRequestApproved(
			state.Request.ID,
			state.Item.ID,
			state.Request.PatronID,
			command.Actor.ID,
			recordIDs,
			command.OccurredAt.Add(rental.DefaultRentalPeriod),
			after.Available(),
			string(after.Status()),
			command.OccurredAt))
}
