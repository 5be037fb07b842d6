package rental

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidPayloadJSON  = errors.New("payload json is not valid")
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
	ErrEmptyEventType      = errors.New("event type must not be empty")
)

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is the DTO engines use to write lifecycle events to the audit log and read them back.
//
// It is built on scalars to stay agnostic of the domain event implementation.
// Construct it only with BuildStorableEvent or BuildStorableEventWithEmptyMetadata.
type StorableEvent struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildStorableEvent is a factory method for StorableEvent.
// Returns an error if the event type is empty or payloadJSON or metadataJSON are not valid JSON.
func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (StorableEvent, error) {
	if eventType == "" {
		return StorableEvent{}, ErrEmptyEventType
	}

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   ToTimestamp(occurredAt),
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata builds a StorableEvent with "{}" as metadata.
func BuildStorableEventWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (StorableEvent, error) {
	return BuildStorableEvent(eventType, occurredAt, payloadJSON, []byte("{}"))
}

// ItemReferenceFields are the top-level payload fields through which an audit event references items.
// A field holds either one id string or an array of id strings.
var ItemReferenceFields = []string{"ItemID", "ItemIDs", "RemovedItemIDs"}
