package unreadnotifications

import "github.com/google/uuid"

// Project combines the two unread counters.
func Project(patronID uuid.UUID, rentalRequests, accessRequests int) UnreadNotifications {
	return UnreadNotifications{
		PatronID:       patronID,
		RentalRequests: rentalRequests,
		AccessRequests: accessRequests,
		Total:          rentalRequests + accessRequests,
	}
}
