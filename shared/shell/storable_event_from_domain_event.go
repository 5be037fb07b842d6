package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails
var ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails
var ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (rental.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return rental.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return rental.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := rental.BuildStorableEvent(
		event.IsEventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return rental.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// AppendsEvents is the part of a transaction needed to write the audit log.
type AppendsEvents interface {
	AppendEvents(ctx context.Context, events ...rental.StorableEvent) error
}

// AppendDomainEvent records the event caused by actor in the audit log of the running transaction.
func AppendDomainEvent(ctx context.Context, tx AppendsEvents, event core.DomainEvent, actor rental.Actor) error {
	uid := uuid.New()
	metadata := BuildEventMetadata(uid, uid, actor)

	storableEvent, err := StorableEventFrom(event, metadata)
	if err != nil {
		return err
	}

	return tx.AppendEvents(ctx, storableEvent)
}
