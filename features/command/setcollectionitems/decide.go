package setcollectionitems

import (
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State is the locked collection, its current members, and the guarded plan for the new set.
type State struct {
	Collection     rental.Collection
	CurrentItemIDs []uuid.UUID
	Plan           rental.MembershipPlan
	PlanErr        error
}

// Removed returns the current members that are not part of the new set.
func (s State) Removed(itemIDs []uuid.UUID) []uuid.UUID {
	removed := make([]uuid.UUID, 0)
	for _, id := range s.CurrentItemIDs {
		if !slices.Contains(itemIDs, id) {
			removed = append(removed, id)
		}
	}

	return removed
}

// Decide implements the business logic of replacing the items of a collection.
//
// Business Rules:
//
//	GIVEN: A locked collection, its current members and the guarded plan of the new set
//	WHEN: SetCollectionItems command is received
//	THEN: CollectionItemsReplaced event is generated with the removed items and the evictions
//	ERROR: Forbidden if a patron edits a collection they did not create
//	ERROR: AlreadyInCollection or BelongsToPrivateCollection if any item violates exclusivity
//	IDEMPOTENCY: If the new set equals the current set, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if command.Actor.Role != rental.RoleLibrarian && state.Collection.CreatedBy != command.Actor.ID {
		return core.ErrorDecision(rental.NewForbidden("edit this collection"))
	}

	if state.PlanErr != nil {
		return core.ErrorDecision(state.PlanErr)
	}

	removed := state.Removed(command.ItemIDs)
	if state.Plan.IsEmpty() && len(removed) == 0 {
		return core.IdempotentDecision()
	}

	evictions := make([]core.Eviction, 0, len(state.Plan.Evict))
	for _, e := range state.Plan.Evict {
		evictions = append(evictions, core.BuildEviction(e.ItemID, e.CollectionID))
	}

	return core.SuccessDecision(
		core.BuildCollectionItemsReplaced(
			state.Collection.ID,
			command.ItemIDs,
			removed,
			evictions,
			command.Actor.ID,
			command.OccurredAt))
}
