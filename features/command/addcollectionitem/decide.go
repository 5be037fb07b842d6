package addcollectionitem

import (
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked collection with the guarded plan for the item.
type State struct {
	Collection rental.Collection
	Plan       rental.MembershipPlan
	PlanErr    error
}

// Decide implements the business logic of adding an item to a collection.
//
// Business Rules:
//
//	GIVEN: A locked collection and the guarded membership plan of the item
//	WHEN: AddCollectionItem command is received
//	THEN: ItemAddedToCollection event is generated, listing the public collections the item was evicted from
//	ERROR: Forbidden if a patron edits a collection they did not create
//	ERROR: AlreadyInCollection or BelongsToPrivateCollection if the item violates exclusivity
//	IDEMPOTENCY: If the item is already a member, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if command.Actor.Role != rental.RoleLibrarian && state.Collection.CreatedBy != command.Actor.ID {
		return core.ErrorDecision(rental.NewForbidden("edit this collection"))
	}

	if state.PlanErr != nil {
		return core.ErrorDecision(state.PlanErr)
	}

	if state.Plan.IsEmpty() {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildItemAddedToCollection(
			state.Collection.ID,
			command.ItemID,
			state.Plan.EvictedFrom(command.ItemID),
			command.Actor.ID,
			command.OccurredAt))
}
