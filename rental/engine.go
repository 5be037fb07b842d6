package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TxFunc is the unit of work executed by Engine.WithinTransaction.
// Returning an error rolls back every write made through tx.
type TxFunc func(ctx context.Context, tx Tx) error

// Engine is the persistence port consumed by the command and query handlers.
type Engine interface {
	// WithinTransaction runs fn in one atomic transaction on the primary database.
	// The transaction is committed only when fn returns nil.
	WithinTransaction(ctx context.Context, fn TxFunc) error

	ReadModel
}

// Tx exposes the reads and writes available inside a transaction.
//
// Methods named Lock* take exclusive row locks (SELECT ... FOR UPDATE) that are held until the
// transaction ends. Missing entities are reported as *Violation of KindNotFound.
type Tx interface {
	// Libraries and items

	InsertLibrary(ctx context.Context, library Library) error
	InsertItem(ctx context.Context, item Item) error
	LockItem(ctx context.Context, itemID uuid.UUID) (Item, error)
	// LockItems locks the items in ascending id order to avoid lock-order deadlocks.
	LockItems(ctx context.Context, itemIDs []uuid.UUID) ([]Item, error)
	UpdateItemStock(ctx context.Context, itemID uuid.UUID, quantity int, status ItemStatus) error

	// Borrow records

	CountOpenBorrows(ctx context.Context, itemID uuid.UUID) (int, error)
	CountOpenBorrowsByPatron(ctx context.Context, itemID, patronID uuid.UUID) (int, error)
	// LockOldestOpenBorrows locks up to limit open records of the patron for the item, oldest borrowed_at first.
	// It may return fewer rows than limit if records were closed concurrently.
	LockOldestOpenBorrows(ctx context.Context, itemID, patronID uuid.UUID, limit int) ([]BorrowRecord, error)
	// InsertBorrowRecords writes all records with a single bulk insert.
	InsertBorrowRecords(ctx context.Context, records []BorrowRecord) error
	CloseBorrowRecords(ctx context.Context, recordIDs []uuid.UUID, returnedAt time.Time) (int64, error)

	// Patrons

	InsertPatron(ctx context.Context, patron Patron) error
	// Patron returns the profile, reporting a missing profile as a KindNotFound violation.
	Patron(ctx context.Context, patronID uuid.UUID) (Patron, error)
	UpdatePatronViewedAt(ctx context.Context, patronID uuid.UUID, rentalsViewedAt, accessViewedAt *time.Time) error

	// Rental requests

	LockRentalRequest(ctx context.Context, requestID uuid.UUID) (RentalRequest, error)
	HasPendingRentalRequest(ctx context.Context, patronID, itemID uuid.UUID) (bool, error)
	InsertRentalRequest(ctx context.Context, request RentalRequest) error
	UpdateRentalRequest(ctx context.Context, request RentalRequest) error
	DeleteRentalRequest(ctx context.Context, requestID uuid.UUID) error

	// Collections

	InsertCollection(ctx context.Context, collection Collection) error
	LockCollection(ctx context.Context, collectionID uuid.UUID) (Collection, error)
	CollectionItemIDs(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error)
	MembershipsOf(ctx context.Context, itemIDs []uuid.UUID) ([]Membership, error)
	LinkItems(ctx context.Context, collectionID uuid.UUID, itemIDs []uuid.UUID) error
	UnlinkItems(ctx context.Context, links []CollectionItem) error
	AddAllowedUser(ctx context.Context, collectionID, patronID uuid.UUID) error

	// Collection access requests

	LockAccessRequest(ctx context.Context, requestID uuid.UUID) (CollectionAccessRequest, error)
	HasPendingAccessRequest(ctx context.Context, patronID, collectionID uuid.UUID) (bool, error)
	InsertAccessRequest(ctx context.Context, request CollectionAccessRequest) error
	UpdateAccessRequest(ctx context.Context, request CollectionAccessRequest) error
	DeleteAccessRequest(ctx context.Context, requestID uuid.UUID) error

	// Audit log

	AppendEvents(ctx context.Context, events ...StorableEvent) error
}

// RentalRequestFilter narrows RentalRequests. Zero values mean "any".
type RentalRequestFilter struct {
	Status   RequestStatus
	PatronID uuid.NullUUID
}

// ItemFilter narrows ItemStocks. Zero values mean "any".
type ItemFilter struct {
	LibraryID               uuid.NullUUID
	NotInAnyCollection      bool
	NotInPrivateCollections bool
}

// ReadModel exposes the non-locking queries used by the query handlers.
// Engines may serve them from a replica when the context asks for EventualConsistency.
type ReadModel interface {
	ItemStock(ctx context.Context, itemID uuid.UUID) (ItemStock, error)
	ItemStocks(ctx context.Context, filter ItemFilter) ([]ItemStock, error)
	Libraries(ctx context.Context) ([]Library, error)
	Collections(ctx context.Context) ([]Collection, error)
	Memberships(ctx context.Context) ([]Membership, error)
	PatronProfile(ctx context.Context, patronID uuid.UUID) (Patron, error)
	OpenBorrowGroups(ctx context.Context, patronID uuid.NullUUID) ([]BorrowGroup, error)
	ReturnedBorrowGroups(ctx context.Context, patronID uuid.UUID) ([]ReturnGroup, error)
	RentalRequests(ctx context.Context, filter RentalRequestFilter) ([]RentalRequest, error)
	CountRentalRequestsByStatus(ctx context.Context, patronID uuid.NullUUID) (map[RequestStatus]int, error)
	// CountDecidedRentalRequests counts approved or rejected requests of the patron decided after the given time.
	// A nil after counts all decided requests.
	CountDecidedRentalRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error)
	CountDecidedAccessRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error)
	// ItemEvents returns the audit events whose payload references the item, oldest first.
	ItemEvents(ctx context.Context, itemID uuid.UUID) (StorableEvents, error)
}
