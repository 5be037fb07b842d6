package createcollection

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

const commandType = "CreateCollection"

// Command represents the intent to create a collection with its initial items and allowed users.
type Command struct {
	Actor        rental.Actor
	CollectionID uuid.UUID
	Title        string
	Description  string
	IsPrivate    bool
	ItemIDs      []uuid.UUID
	AllowedUsers []uuid.UUID
	OccurredAt   core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	actor rental.Actor,
	collectionID uuid.UUID,
	title string,
	description string,
	isPrivate bool,
	itemIDs []uuid.UUID,
	allowedUsers []uuid.UUID,
	occurredAt time.Time,
) Command {

	return Command{
		Actor:        actor,
		CollectionID: collectionID,
		Title:        title,
		Description:  description,
		IsPrivate:    isPrivate,
		ItemIDs:      itemIDs,
		AllowedUsers: allowedUsers,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}

// Target returns the collection the command would create.
func (c Command) Target() rental.Collection {
	return rental.Collection{
		ID:           c.CollectionID,
		Title:        c.Title,
		Description:  c.Description,
		IsPrivate:    c.IsPrivate,
		CreatedBy:    c.Actor.ID,
		AllowedUsers: rental.SortedUniqueIDs(c.AllowedUsers),
		CreatedAt:    c.OccurredAt,
	}
}
