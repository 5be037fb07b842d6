package submitaccessrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "SubmitAccessRequest"

// Command represents the intent of a patron to be allowed into a private collection.
type Command struct {
	Actor        rental.Actor
	RequestID    uuid.UUID
	CollectionID uuid.UUID
	OccurredAt   core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, requestID, collectionID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		Actor:        actor,
		RequestID:    requestID,
		CollectionID: collectionID,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
