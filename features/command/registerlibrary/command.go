package registerlibrary

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "RegisterLibrary"

// Command represents the intent to register a library.
type Command struct {
	Actor       rental.Actor
	LibraryID   uuid.UUID
	Title       string
	Description string
	Location    string
	OccurredAt  core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	actor rental.Actor,
	libraryID uuid.UUID,
	title string,
	description string,
	location string,
	occurredAt time.Time,
) Command {

	return Command{
		Actor:       actor,
		LibraryID:   libraryID,
		Title:       title,
		Description: description,
		Location:    location,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
