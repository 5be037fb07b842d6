package registeritem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "RegisterItem"

// Command represents the intent to register an item.
type Command struct {
	Actor       rental.Actor
	ItemID      uuid.UUID
	LibraryID   uuid.NullUUID
	Title       string
	Description string
	Location    string
	Quantity    int
	OccurredAt  core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	actor rental.Actor,
	itemID uuid.UUID,
	libraryID uuid.NullUUID,
	title string,
	description string,
	location string,
	quantity int,
	occurredAt time.Time,
) Command {

	return Command{
		Actor:       actor,
		ItemID:      itemID,
		LibraryID:   libraryID,
		Title:       title,
		Description: description,
		Location:    location,
		Quantity:    quantity,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
