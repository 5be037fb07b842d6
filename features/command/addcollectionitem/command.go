package addcollectionitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "AddCollectionItem"

// Command represents the intent to link one item to a collection.
type Command struct {
	Actor        rental.Actor
	CollectionID uuid.UUID
	ItemID       uuid.UUID
	OccurredAt   core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, collectionID, itemID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		Actor:        actor,
		CollectionID: collectionID,
		ItemID:       itemID,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
