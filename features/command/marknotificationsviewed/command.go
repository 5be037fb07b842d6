package marknotificationsviewed

import (
	"time"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "MarkNotificationsViewed"

// Command represents a patron viewing their rental and/or access request notifications.
type Command struct {
	Actor          rental.Actor
	Rentals        bool
	AccessRequests bool
	OccurredAt     core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, rentals, accessRequests bool, occurredAt time.Time) Command {
	return Command{
		Actor:          actor,
		Rentals:        rentals,
		AccessRequests: accessRequests,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
