package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CorrelationID represents the ID correlating related events.
type CorrelationID = string

// EventMetadata contains event tracking information and the actor that caused the event.
type EventMetadata struct {
	MessageID     MessageID
	CorrelationID CorrelationID
	ActorID       string
	ActorRole     string
}

// BuildEventMetadata creates EventMetadata for an event caused by actor.
func BuildEventMetadata(messageID uuid.UUID, correlationID uuid.UUID, actor rental.Actor) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CorrelationID: correlationID.String(),
		ActorID:       actor.ID.String(),
		ActorRole:     actor.Role.String(),
	}
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent rental.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)
	err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata)
	if err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
