package denyaccessrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "DenyAccessRequest"

// Command represents the intent of a librarian to deny a collection access request.
type Command struct {
	Actor      rental.Actor
	RequestID  uuid.UUID
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, requestID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		RequestID:  requestID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
