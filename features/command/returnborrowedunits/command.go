package returnborrowedunits

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "ReturnBorrowedUnits"

// Command represents the intent of a librarian to take back Quantity units of an item from a patron.
type Command struct {
	Actor      rental.Actor
	ItemID     uuid.UUID
	PatronID   uuid.UUID
	Quantity   int
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(actor rental.Actor, itemID, patronID uuid.UUID, quantity int, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		ItemID:     itemID,
		PatronID:   patronID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
