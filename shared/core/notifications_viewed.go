package core

import (
	"time"

	"github.com/google/uuid"
)

// NotificationsViewedEventType is the event type identifier.
const NotificationsViewedEventType = "NotificationsViewed"

// NotificationsViewed represents when a patron looked at their decided requests.
type NotificationsViewed struct {
	PatronID       PatronIDString
	Rentals        bool
	AccessRequests bool
	OccurredAt     OccurredAtTS
}

// BuildNotificationsViewed creates a new NotificationsViewed event.
func BuildNotificationsViewed(patronID uuid.UUID, rentals bool, accessRequests bool, occurredAt time.Time) NotificationsViewed {
	event := NotificationsViewed{
		PatronID:       patronID.String(),
		Rentals:        rentals,
		AccessRequests: accessRequests,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e NotificationsViewed) IsEventType() string {
	return NotificationsViewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e NotificationsViewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
