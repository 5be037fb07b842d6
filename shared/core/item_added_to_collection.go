package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemAddedToCollectionEventType is the event type identifier.
const ItemAddedToCollectionEventType = "ItemAddedToCollection"

// ItemAddedToCollection represents when one item was linked to a collection.
// EvictedFrom lists the public collections the item was unlinked from because the target is private.
type ItemAddedToCollection struct {
	CollectionID CollectionIDString
	ItemID       ItemIDString
	EvictedFrom  []string
	ActorID      string
	OccurredAt   OccurredAtTS
}

// BuildItemAddedToCollection creates a new ItemAddedToCollection event.
func BuildItemAddedToCollection(
	collectionID uuid.UUID,
	itemID uuid.UUID,
	evictedFrom []uuid.UUID,
	actorID uuid.UUID,
	occurredAt time.Time,
) ItemAddedToCollection {

	event := ItemAddedToCollection{
		CollectionID: collectionID.String(),
		ItemID:       itemID.String(),
		EvictedFrom:  IDStrings(evictedFrom),
		ActorID:      actorID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ItemAddedToCollection) IsEventType() string {
	return ItemAddedToCollectionEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemAddedToCollection) HasOccurredAt() time.Time {
	return e.OccurredAt
}
