package createcollection

import (
	"strings"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// State carries the outcome of the Collection Exclusivity Guard over the initial items.
type State struct {
	Plan    rental.MembershipPlan
	PlanErr error
}

// Decide implements the business logic of creating a collection.
//
// Business Rules:
//
//	GIVEN: The guarded membership plan of the initial items
//	WHEN: CreateCollection command is received
//	THEN: CollectionCreated event is generated, listing the public memberships evicted by a private collection
//	ERROR: Forbidden if a patron tries to create a private collection
//	ERROR: InvalidInput if the title is empty
//	ERROR: AlreadyInCollection or BelongsToPrivateCollection if an initial item violates exclusivity
func Decide(state State, command Command) core.DecisionResult {
	if command.IsPrivate && command.Actor.Role != rental.RoleLibrarian {
		return core.ErrorDecision(rental.NewForbidden("create private collections"))
	}

	title := strings.TrimSpace(command.Title)
	if title == "" {
		return core.ErrorDecision(rental.NewInvalidInput("Title must not be empty."))
	}

	if state.PlanErr != nil {
		return core.ErrorDecision(state.PlanErr)
	}

	evictions := make([]core.Eviction, 0, len(state.Plan.Evict))
	for _, e := range state.Plan.Evict {
		evictions = append(evictions, core.BuildEviction(e.ItemID, e.CollectionID))
	}

	return core.SuccessDecision(
		core.BuildCollectionCreated(
			command.CollectionID,
			title,
			strings.TrimSpace(command.Description),
			command.IsPrivate,
			command.Actor.ID,
			state.Plan.Link,
			rental.SortedUniqueIDs(command.AllowedUsers),
			evictions,
			command.OccurredAt))
}
