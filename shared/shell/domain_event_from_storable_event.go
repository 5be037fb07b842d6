package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents rental.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent rental.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.PatronRegisteredEventType:
		return unmarshalPayload[core.PatronRegistered](payload)
	case core.LibraryRegisteredEventType:
		return unmarshalPayload[core.LibraryRegistered](payload)
	case core.ItemRegisteredEventType:
		return unmarshalPayload[core.ItemRegistered](payload)
	case core.ItemQuantityChangedEventType:
		return unmarshalPayload[core.ItemQuantityChanged](payload)
	case core.RentalRequestSubmittedEventType:
		return unmarshalPayload[core.RentalRequestSubmitted](payload)
	case core.RentalRequestApprovedEventType:
		return unmarshalPayload[core.RentalRequestApproved](payload)
	case core.RentalRequestDeniedEventType:
		return unmarshalPayload[core.RentalRequestDenied](payload)
	case core.RentalRequestCanceledEventType:
		return unmarshalPayload[core.RentalRequestCanceled](payload)
	case core.BorrowRecordedEventType:
		return unmarshalPayload[core.BorrowRecorded](payload)
	case core.BorrowedUnitsReturnedEventType:
		return unmarshalPayload[core.BorrowedUnitsReturned](payload)
	case core.CollectionCreatedEventType:
		return unmarshalPayload[core.CollectionCreated](payload)
	case core.ItemAddedToCollectionEventType:
		return unmarshalPayload[core.ItemAddedToCollection](payload)
	case core.CollectionItemsReplacedEventType:
		return unmarshalPayload[core.CollectionItemsReplaced](payload)
	case core.AccessRequestSubmittedEventType:
		return unmarshalPayload[core.AccessRequestSubmitted](payload)
	case core.AccessRequestApprovedEventType:
		return unmarshalPayload[core.AccessRequestApproved](payload)
	case core.AccessRequestDeniedEventType:
		return unmarshalPayload[core.AccessRequestDenied](payload)
	case core.AccessRequestCanceledEventType:
		return unmarshalPayload[core.AccessRequestCanceled](payload)
	case core.NotificationsViewedEventType:
		return unmarshalPayload[core.NotificationsViewed](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
