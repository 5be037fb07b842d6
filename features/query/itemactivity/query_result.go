package itemactivity

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// ActivityEntry represents one lifecycle event of the item.
type ActivityEntry struct {
	EventType  string
	OccurredAt time.Time
	Event      core.DomainEvent
}

// ItemActivity represents the query result, in the order the events were recorded.
type ItemActivity struct {
	ItemID  uuid.UUID
	Entries []ActivityEntry
}
