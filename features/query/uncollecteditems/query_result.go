package uncollecteditems

import "github.com/google/uuid"

// ItemInfo represents a single item candidate.
type ItemInfo struct {
	ItemID            uuid.UUID
	Title             string
	AvailableQuantity int
}

// UncollectedItems represents the query result.
type UncollectedItems struct {
	NotInAnyCollection     []ItemInfo
	NotInPrivateCollection []ItemInfo
}
