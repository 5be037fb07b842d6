package recordborrow

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "RecordBorrow"

// Command represents the intent of a librarian to hand out Quantity units of an item to a patron.
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
