package registeritem

import (
	"strings"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of registering an item.
//
// Business Rules:
//
//	GIVEN: An item id, title and quantity
//	WHEN: RegisterItem command is received
//	THEN: ItemRegistered event is generated
//	ERROR: InvalidInput if the title is empty
//	ERROR: InvalidInput if the quantity is not between 1 and rental.MaxItemQuantity
func Decide(command Command) core.DecisionResult {
	title := strings.TrimSpace(command.Title)
	if title == "" {
		return core.ErrorDecision(rental.NewInvalidInput("Title must not be empty."))
	}

	if err := rental.ValidateItemQuantity(command.Quantity); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(
		core.BuildItemRegistered(
			command.ItemID,
			command.LibraryID,
			title,
			command.Description,
			command.Location,
			command.Quantity,
			command.Actor.ID,
			command.OccurredAt))
}
