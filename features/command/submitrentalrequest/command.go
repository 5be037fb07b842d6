package submitrentalrequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "SubmitRentalRequest"

// Command represents the intent of a patron to rent units of an item.
type Command struct {
	Actor      rental.Actor
	RequestID  uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, requestID uuid.UUID, itemID uuid.UUID, quantity int, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		RequestID:  requestID,
		ItemID:     itemID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
