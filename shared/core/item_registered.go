package core

import (
	"time"

	"github.com/google/uuid"
)

// ItemRegisteredEventType is the event type identifier.
const ItemRegisteredEventType = "ItemRegistered"

// ItemRegistered represents when a new piece of gear was added to the inventory.
type ItemRegistered struct {
	ItemID      ItemIDString
	LibraryID   LibraryIDString
	Title       string
	Description string
	Location    string
	Quantity    int
	LibrarianID LibrarianIDString
	OccurredAt  OccurredAtTS
}

// BuildItemRegistered creates a new ItemRegistered event.
func BuildItemRegistered(
	itemID uuid.UUID,
	libraryID uuid.NullUUID,
	title string,
	description string,
	location string,
	quantity int,
	librarianID uuid.UUID,
	occurredAt time.Time,
) ItemRegistered {

	event := ItemRegistered{
		ItemID:      itemID.String(),
		LibraryID:   NullIDString(libraryID),
		Title:       title,
		Description: description,
		Location:    location,
		Quantity:    quantity,
		LibrarianID: librarianID.String(),
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ItemRegistered) IsEventType() string {
	return ItemRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
