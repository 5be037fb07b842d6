package changeitemquantity

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "ChangeItemQuantity"

// Command represents the intent to change the number of units an item owns.
type Command struct {
	Actor      rental.Actor
	ItemID     uuid.UUID
	Quantity   int
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, itemID uuid.UUID, quantity int, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		ItemID:     itemID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
