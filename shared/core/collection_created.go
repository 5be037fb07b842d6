package core

import (
	"time"

	"github.com/google/uuid"
)

// CollectionCreatedEventType is the event type identifier.
const CollectionCreatedEventType = "CollectionCreated"

// CollectionCreated represents when a collection was created with its initial items and allowed users.
type CollectionCreated struct {
	CollectionID CollectionIDString
	Title        string
	Description  string
	IsPrivate    bool
	CreatedBy    PatronIDString
	ItemIDs      []string
	AllowedUsers []string
	Evictions    []Eviction
	OccurredAt   OccurredAtTS
}

// BuildCollectionCreated creates a new CollectionCreated event.
func BuildCollectionCreated(
	collectionID uuid.UUID,
	title string,
	description string,
	isPrivate bool,
	createdBy uuid.UUID,
	itemIDs []uuid.UUID,
	allowedUsers []uuid.UUID,
	evictions []Eviction,
	occurredAt time.Time,
) CollectionCreated {

	event := CollectionCreated{
		CollectionID: collectionID.String(),
		Title:        title,
		Description:  description,
		IsPrivate:    isPrivate,
		CreatedBy:    createdBy.String(),
		ItemIDs:      IDStrings(itemIDs),
		AllowedUsers: IDStrings(allowedUsers),
		Evictions:    evictions,
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CollectionCreated) IsEventType() string {
	return CollectionCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CollectionCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
