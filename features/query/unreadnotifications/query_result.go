package unreadnotifications

import "github.com/google/uuid"

// UnreadNotifications represents the query result.
type UnreadNotifications struct {
	PatronID       uuid.UUID
	RentalRequests int
	AccessRequests int
	Total          int
}
