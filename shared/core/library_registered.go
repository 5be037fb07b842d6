package core

import (
	"time"

	"github.com/google/uuid"
)

// LibraryRegisteredEventType is the event type identifier.
const LibraryRegisteredEventType = "LibraryRegistered"

// LibraryRegistered represents when a library (a physical location holding items) was set up.
type LibraryRegistered struct {
	LibraryID   LibraryIDString
	Title       string
	Description string
	Location    string
	OccurredAt  OccurredAtTS
}

// BuildLibraryRegistered creates a new LibraryRegistered event.
func BuildLibraryRegistered(
	libraryID uuid.UUID,
	title string,
	description string,
	location string,
	occurredAt time.Time,
) LibraryRegistered {

	event := LibraryRegistered{
		LibraryID:   libraryID.String(),
		Title:       title,
		Description: description,
		Location:    location,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LibraryRegistered) IsEventType() string {
	return LibraryRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e LibraryRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
