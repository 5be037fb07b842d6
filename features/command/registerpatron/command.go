package registerpatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "RegisterPatron"

// Command represents the intent to register a user profile.
type Command struct {
	Actor      rental.Actor
	PatronID   uuid.UUID
	Name       string
	Role       rental.Role
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, patronID uuid.UUID, name string, role rental.Role, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		PatronID:   patronID,
		Name:       name,
		Role:       role,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
