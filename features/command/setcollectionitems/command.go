package setcollectionitems

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "SetCollectionItems"

// Command represents the intent to make ItemIDs the complete item set of a collection.
type Command struct {
	Actor        rental.Actor
	CollectionID uuid.UUID
	ItemIDs      []uuid.UUID
	OccurredAt   core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, collectionID uuid.UUID, itemIDs []uuid.UUID, occurredAt time.Time) Command {
	return Command{
		Actor:        actor,
		CollectionID: collectionID,
		ItemIDs:      rental.SortedUniqueIDs(itemIDs),
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
