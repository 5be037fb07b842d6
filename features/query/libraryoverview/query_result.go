package libraryoverview

import "github.com/google/uuid"

// ItemInfo represents one item of a library with its derived availability.
type ItemInfo struct {
	ItemID            uuid.UUID
	Title             string
	Quantity          int
	AvailableQuantity int
	Status            string
}

// LibraryInfo represents a library with its items.
type LibraryInfo struct {
	LibraryID         uuid.UUID
	Title             string
	Location          string
	Items             []ItemInfo
	HasAvailableItems bool
	HasRentedItems    bool
}

// LibraryOverview represents the query result. Items that belong to no library are listed separately.
type LibraryOverview struct {
	Libraries       []LibraryInfo
	UnassignedItems []ItemInfo
}
