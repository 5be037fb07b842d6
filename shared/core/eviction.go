package core

import "github.com/google/uuid"

// Eviction records that an item was unlinked from a public collection because it joined a private one.
type Eviction struct {
	ItemID       ItemIDString
	CollectionID CollectionIDString
}

// BuildEviction creates a new Eviction.
func BuildEviction(itemID uuid.UUID, collectionID uuid.UUID) Eviction {
	return Eviction{
		ItemID:       itemID.String(),
		CollectionID: collectionID.String(),
	}
}
