package core

import (
	"time"

	"github.com/google/uuid"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// EventTypeString represents the type of event.
type EventTypeString = string

// ItemIDString represents an item identifier.
type ItemIDString = string

// PatronIDString represents a patron identifier.
type PatronIDString = string

// LibrarianIDString represents the identifier of the acting librarian.
type LibrarianIDString = string

// RequestIDString represents a rental or access request identifier.
type RequestIDString = string

// CollectionIDString represents a collection identifier.
type CollectionIDString = string

// LibraryIDString represents a library identifier.
type LibraryIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// IDStrings converts a list of ids into their string form, keeping the order.
func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}

// NullIDString converts a nullable id, mapping NULL to the empty string.
func NullIDString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}

	return id.UUID.String()
}
