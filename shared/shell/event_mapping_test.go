package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

func Test_StorableEventFrom_DomainEventFrom_RentalRequestApproved(t *testing.T) {
	// arrange
	now := time.Now()
	recordIDs := []uuid.UUID{uuid.New(), uuid.New()}
	event := core.BuildRentalRequestApproved(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		recordIDs, now.Add(rental.DefaultRentalPeriod), 3, string(rental.ItemStatusAvailable), now,
	)
	actor := rental.Librarian(uuid.New())

	// act
	storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uuid.New(), uuid.New(), actor))
	assert.NoError(t, err)
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, core.RentalRequestApprovedEventType, storableEvent.EventType)
	assert.Equal(t, event, domainEvent)
	assert.Equal(t, 2, domainEvent.(core.RentalRequestApproved).Quantity)
}

func Test_StorableEventFrom_DomainEventFrom_CollectionItemsReplaced(t *testing.T) {
	// arrange
	itemID := uuid.New()
	publicCollectionID := uuid.New()
	event := core.BuildCollectionItemsReplaced(
		uuid.New(),
		[]uuid.UUID{itemID},
		[]uuid.UUID{uuid.New()},
		[]core.Eviction{core.BuildEviction(itemID, publicCollectionID)},
		uuid.New(),
		time.Now(),
	)

	// act
	storableEvent, err := shell.StorableEventFrom(event, shell.EventMetadata{})
	assert.NoError(t, err)
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, event, domainEvent)
}

func Test_EventMetadataFrom_CarriesActor(t *testing.T) {
	// arrange
	actor := rental.PatronActor(uuid.New())
	event := core.BuildNotificationsViewed(actor.ID, true, false, time.Now())

	storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uuid.New(), uuid.New(), actor))
	assert.NoError(t, err)

	// act
	metadata, err := shell.EventMetadataFrom(storableEvent)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, actor.ID.String(), metadata.ActorID)
	assert.Equal(t, "patron", metadata.ActorRole)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := rental.BuildStorableEventWithEmptyMetadata("WishlistItemAdded", time.Now(), []byte(`{}`))
	assert.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_AppendDomainEvent_WritesOneStorableEvent(t *testing.T) {
	// arrange
	tx := &appendsEventsSpy{}
	event := core.BuildLibraryRegistered(uuid.New(), "Basement", "", "Building A", time.Now())

	// act
	err := shell.AppendDomainEvent(context.Background(), tx, event, rental.Librarian(uuid.New()))

	// assert
	assert.NoError(t, err)
	assert.Len(t, tx.events, 1)
	assert.Equal(t, core.LibraryRegisteredEventType, tx.events[0].EventType)
}

type appendsEventsSpy struct {
	events rental.StorableEvents
}

func (s *appendsEventsSpy) AppendEvents(_ context.Context, events ...rental.StorableEvent) error {
	s.events = append(s.events, events...)
	return nil
}
