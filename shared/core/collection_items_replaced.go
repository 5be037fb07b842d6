package core

import (
	"time"

	"github.com/google/uuid"
)

// CollectionItemsReplacedEventType is the event type identifier.
const CollectionItemsReplacedEventType = "CollectionItemsReplaced"

// CollectionItemsReplaced represents when the complete item set of a collection was replaced.
// ItemIDs is the resulting set; RemovedItemIDs were members before and are not anymore.
type CollectionItemsReplaced struct {
	CollectionID   CollectionIDString
	ItemIDs        []string
	RemovedItemIDs []string
	Evictions      []Eviction
	ActorID        string
	OccurredAt     OccurredAtTS
}

// BuildCollectionItemsReplaced creates a new CollectionItemsReplaced event.
func BuildCollectionItemsReplaced(
	collectionID uuid.UUID,
	itemIDs []uuid.UUID,
	removedItemIDs []uuid.UUID,
	evictions []Eviction,
	actorID uuid.UUID,
	occurredAt time.Time,
) CollectionItemsReplaced {

	event := CollectionItemsReplaced{
		CollectionID:   collectionID.String(),
		ItemIDs:        IDStrings(itemIDs),
		RemovedItemIDs: IDStrings(removedItemIDs),
		Evictions:      evictions,
		ActorID:        actorID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CollectionItemsReplaced) IsEventType() string {
	return CollectionItemsReplacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CollectionItemsReplaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}
