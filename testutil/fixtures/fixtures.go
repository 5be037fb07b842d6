package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/memoryengine"
)

// FixedTime is the reference clock of fixture based tests.
var FixedTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// Engine is the part of a rental engine fixtures need.
type Engine interface {
	WithinTransaction(ctx context.Context, fn rental.TxFunc) error
}

// NewMemoryEngine creates an empty in-memory engine.
func NewMemoryEngine(t testing.TB) *memoryengine.Engine {
	t.Helper()

	engine, err := memoryengine.NewEngine()
	require.NoError(t, err, "error in arranging test data")

	return engine
}

// GivenUniqueID returns a fresh time-ordered id.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

func seed(t testing.TB, engine Engine, fn rental.TxFunc) {
	t.Helper()

	err := engine.WithinTransaction(context.Background(), fn)
	require.NoError(t, err, "error in arranging test data")
}

// GivenLibrary stores a library.
func GivenLibrary(t testing.TB, engine Engine, title string) rental.Library {
	t.Helper()

	library := rental.Library{ID: GivenUniqueID(t), Title: title, Location: "Basement"}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertLibrary(ctx, library)
	})

	return library
}

// GivenItem stores an available item with the given quantity.
func GivenItem(t testing.TB, engine Engine, title string, quantity int) rental.Item {
	t.Helper()

	return GivenItemInLibrary(t, engine, title, quantity, uuid.NullUUID{})
}

// GivenItemInLibrary stores an available item that belongs to a library.
func GivenItemInLibrary(t testing.TB, engine Engine, title string, quantity int, libraryID uuid.NullUUID) rental.Item {
	t.Helper()

	item := rental.Item{
		ID:        GivenUniqueID(t),
		LibraryID: libraryID,
		Title:     title,
		Quantity:  quantity,
		Status:    rental.ItemStatusAvailable,
		CreatedAt: FixedTime,
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertItem(ctx, item)
	})

	return item
}

// GivenPatron stores a user profile with the patron role.
func GivenPatron(t testing.TB, engine Engine, name string) rental.Patron {
	t.Helper()

	return givenProfile(t, engine, name, rental.RolePatron)
}

// GivenLibrarian stores a user profile with the librarian role.
func GivenLibrarian(t testing.TB, engine Engine, name string) rental.Patron {
	t.Helper()

	return givenProfile(t, engine, name, rental.RoleLibrarian)
}

func givenProfile(t testing.TB, engine Engine, name string, role rental.Role) rental.Patron {
	t.Helper()

	patron := rental.Patron{ID: GivenUniqueID(t), Name: name, Role: role}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertPatron(ctx, patron)
	})

	return patron
}

// GivenOpenBorrows stores n open borrow records of the patron, borrowed one minute apart starting at borrowedAt,
// and recomputes the cached status of the item.
func GivenOpenBorrows(
	t testing.TB,
	engine Engine,
	itemID uuid.UUID,
	patronID uuid.UUID,
	n int,
	borrowedAt time.Time,
) []rental.BorrowRecord {

	t.Helper()

	records := make([]rental.BorrowRecord, 0, n)
	for i := range n {
		records = append(records, rental.BorrowRecord{
			ID:         GivenUniqueID(t),
			ItemID:     itemID,
			PatronID:   patronID,
			BorrowedAt: borrowedAt.Add(time.Duration(i) * time.Minute),
		})
	}

	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		item, err := tx.LockItem(ctx, itemID)
		if err != nil {
			return err
		}

		if err = tx.InsertBorrowRecords(ctx, records); err != nil {
			return err
		}

		openBorrows, err := tx.CountOpenBorrows(ctx, itemID)
		if err != nil {
			return err
		}

		stock := rental.Stock{Quantity: item.Quantity, OpenBorrows: openBorrows}

		return tx.UpdateItemStock(ctx, itemID, item.Quantity, stock.Status())
	})

	return records
}

// GivenPendingRentalRequest stores a pending rental request.
func GivenPendingRentalRequest(t testing.TB, engine Engine, itemID, patronID uuid.UUID, quantity int) rental.RentalRequest {
	t.Helper()

	request := rental.RentalRequest{
		ID:        GivenUniqueID(t),
		ItemID:    itemID,
		PatronID:  patronID,
		Quantity:  quantity,
		Status:    rental.RequestStatusPending,
		CreatedAt: FixedTime,
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertRentalRequest(ctx, request)
	})

	return request
}

// GivenDecidedRentalRequest stores an approved or rejected rental request decided at decidedAt.
func GivenDecidedRentalRequest(
	t testing.TB,
	engine Engine,
	itemID uuid.UUID,
	patronID uuid.UUID,
	status rental.RequestStatus,
	decidedAt time.Time,
) rental.RentalRequest {

	t.Helper()

	request := rental.RentalRequest{
		ID:           GivenUniqueID(t),
		ItemID:       itemID,
		PatronID:     patronID,
		Quantity:     1,
		Status:       status,
		ApproverID:   uuid.NullUUID{UUID: GivenUniqueID(t), Valid: true},
		ApprovedDate: &decidedAt,
		CreatedAt:    decidedAt.Add(-time.Hour),
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertRentalRequest(ctx, request)
	})

	return request
}

// GivenCollection stores a collection created by createdBy and links the items without running the exclusivity guard.
func GivenCollection(
	t testing.TB,
	engine Engine,
	title string,
	isPrivate bool,
	createdBy uuid.UUID,
	itemIDs ...uuid.UUID,
) rental.Collection {

	t.Helper()

	collection := rental.Collection{
		ID:        GivenUniqueID(t),
		Title:     title,
		IsPrivate: isPrivate,
		CreatedBy: createdBy,
		CreatedAt: FixedTime,
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertCollection(ctx, collection); err != nil {
			return err
		}

		return tx.LinkItems(ctx, collection.ID, itemIDs)
	})

	return collection
}

// GivenAllowedUser adds the patron to the allowed users of a collection.
func GivenAllowedUser(t testing.TB, engine Engine, collectionID, patronID uuid.UUID) {
	t.Helper()

	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.AddAllowedUser(ctx, collectionID, patronID)
	})
}

// GivenPendingAccessRequest stores a pending access request.
func GivenPendingAccessRequest(t testing.TB, engine Engine, collectionID, patronID uuid.UUID) rental.CollectionAccessRequest {
	t.Helper()

	request := rental.CollectionAccessRequest{
		ID:           GivenUniqueID(t),
		CollectionID: collectionID,
		PatronID:     patronID,
		Status:       rental.RequestStatusPending,
		CreatedAt:    FixedTime,
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertAccessRequest(ctx, request)
	})

	return request
}

// GivenDecidedAccessRequest stores an approved or rejected access request decided at decidedAt.
func GivenDecidedAccessRequest(
	t testing.TB,
	engine Engine,
	collectionID uuid.UUID,
	patronID uuid.UUID,
	status rental.RequestStatus,
	decidedAt time.Time,
) rental.CollectionAccessRequest {

	t.Helper()

	request := rental.CollectionAccessRequest{
		ID:           GivenUniqueID(t),
		CollectionID: collectionID,
		PatronID:     patronID,
		Status:       status,
		ApproverID:   uuid.NullUUID{UUID: GivenUniqueID(t), Valid: true},
		ApprovedDate: &decidedAt,
		CreatedAt:    decidedAt.Add(-time.Hour),
	}
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertAccessRequest(ctx, request)
	})

	return request
}

// LoadRentalRequest reads a rental request inside a transaction.
func LoadRentalRequest(t testing.TB, engine Engine, requestID uuid.UUID) (rental.RentalRequest, error) {
	t.Helper()

	var request rental.RentalRequest
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		var lockErr error
		request, lockErr = tx.LockRentalRequest(ctx, requestID)

		return lockErr
	})

	return request, err
}

// LoadAccessRequest reads an access request inside a transaction.
func LoadAccessRequest(t testing.TB, engine Engine, requestID uuid.UUID) (rental.CollectionAccessRequest, error) {
	t.Helper()

	var request rental.CollectionAccessRequest
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		var lockErr error
		request, lockErr = tx.LockAccessRequest(ctx, requestID)

		return lockErr
	})

	return request, err
}

// LoadCollectionItemIDs returns the ids of the items in a collection, sorted.
func LoadCollectionItemIDs(t testing.TB, engine Engine, collectionID uuid.UUID) []uuid.UUID {
	t.Helper()

	var ids []uuid.UUID
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		var err error
		ids, err = tx.CollectionItemIDs(ctx, collectionID)

		return err
	})

	return ids
}

// LoadCollection reads a collection with its allowed users.
func LoadCollection(t testing.TB, engine Engine, collectionID uuid.UUID) rental.Collection {
	t.Helper()

	var collection rental.Collection
	seed(t, engine, func(ctx context.Context, tx rental.Tx) error {
		var err error
		collection, err = tx.LockCollection(ctx, collectionID)

		return err
	})

	return collection
}
