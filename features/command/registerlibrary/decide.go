package registerlibrary

import (
	"strings"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Decide implements the business logic of registering a library.
//
// Business Rules:
//
//	GIVEN: A library id and title
//	WHEN: RegisterLibrary command is received
//	THEN: LibraryRegistered event is generated
//	ERROR: InvalidInput if the title is empty
func Decide(command Command) core.DecisionResult {
	title := strings.TrimSpace(command.Title)
	if title == "" {
		return core.ErrorDecision(rental.NewInvalidInput("Title must not be empty."))
	}

	return core.SuccessDecision(
		core.BuildLibraryRegistered(
			command.LibraryID,
			title,
			command.Description,
			command.Location,
			command.OccurredAt))
}
