package itemactivity

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// Project builds the activity log from decoded domain events.
func Project(itemID uuid.UUID, events core.DomainEvents) ItemActivity {
	result := ItemActivity{
		ItemID:  itemID,
		Entries: make([]ActivityEntry, 0, len(events)),
	}

	for _, e := range events {
		result.Entries = append(result.Entries, ActivityEntry{
			EventType:  e.IsEventType(),
			OccurredAt: e.HasOccurredAt(),
			Event:      e,
		})
	}

	return result
}
