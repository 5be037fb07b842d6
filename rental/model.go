package rental

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the cached availability flag of an item. It is derived, never authoritative.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusRentedOut ItemStatus = "rented_out"
)

// RequestStatus is the state of a rental request or a collection access request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsTerminal reports whether no transition can leave this status.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Library groups items by physical location.
type Library struct {
	ID          uuid.UUID
	Title       string
	Description string
	Location    string
}

// Item is a piece of gear that owns Quantity physical units.
type Item struct {
	ID          uuid.UUID
	LibraryID   uuid.NullUUID
	Title       string
	Description string
	Location    string
	Quantity    int
	Status      ItemStatus
	CreatedAt   time.Time
}

// BorrowRecord is one physically borrowed unit. ReturnedAt is nil while the unit is out.
type BorrowRecord struct {
	ID              uuid.UUID
	ItemID          uuid.UUID
	PatronID        uuid.UUID
	RentalRequestID uuid.NullUUID
	BorrowedAt      time.Time
	ReturnedAt      *time.Time
}

// IsOpen reports whether the unit is currently on loan.
func (r BorrowRecord) IsOpen() bool {
	return r.ReturnedAt == nil
}

// RentalRequest is a patron's ask for Quantity units of an item.
type RentalRequest struct {
	ID             uuid.UUID
	ItemID         uuid.UUID
	PatronID       uuid.UUID
	Quantity       int
	Status         RequestStatus
	ApproverID     uuid.NullUUID
	ApprovedDate   *time.Time
	RentStartDate  *time.Time
	RentReturnDate *time.Time
	CreatedAt      time.Time
}

// Collection owns a set of items. Private collections are visible to their creator and allowed users only.
type Collection struct {
	ID           uuid.UUID
	Title        string
	Description  string
	IsPrivate    bool
	CreatedBy    uuid.UUID
	AllowedUsers []uuid.UUID
	CreatedAt    time.Time
}

// Allows reports whether the patron is in the allowed users of the collection.
func (c Collection) Allows(patronID uuid.UUID) bool {
	for _, id := range c.AllowedUsers {
		if id == patronID {
			return true
		}
	}

	return false
}

// IsVisibleTo reports whether an actor may see the collection.
func (c Collection) IsVisibleTo(actor Actor) bool {
	if !c.IsPrivate {
		return true
	}

	switch actor.Role {
	case RoleLibrarian:
		return true
	case RolePatron:
		return c.CreatedBy == actor.ID || c.Allows(actor.ID)
	default:
		return false
	}
}

// CollectionItem is one membership edge between a collection and an item.
type CollectionItem struct {
	CollectionID uuid.UUID
	ItemID       uuid.UUID
}

// Membership is a CollectionItem enriched with what the Collection Exclusivity Guard needs to know.
type Membership struct {
	ItemID          uuid.UUID
	CollectionID    uuid.UUID
	CollectionTitle string
	IsPrivate       bool
}

// CollectionAccessRequest is a patron's ask to be added to a private collection's allowed users.
type CollectionAccessRequest struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	PatronID     uuid.UUID
	Status       RequestStatus
	ApproverID   uuid.NullUUID
	ApprovedDate *time.Time
	CreatedAt    time.Time
}

// Patron is a user profile as far as the engine is concerned.
type Patron struct {
	ID                         uuid.UUID
	Name                       string
	Role                       Role
	RentalsLastViewedAt        *time.Time
	AccessRequestsLastViewedAt *time.Time
}

// ItemStock is an item together with its current number of open borrow records.
type ItemStock struct {
	Item        Item
	OpenBorrows int
}

// Stock returns the Inventory Ledger view of the item.
func (s ItemStock) Stock() Stock {
	return Stock{Quantity: s.Item.Quantity, OpenBorrows: s.OpenBorrows}
}

// BorrowGroup aggregates open borrow records per (patron, item).
type BorrowGroup struct {
	PatronID           uuid.UUID
	ItemID             uuid.UUID
	ItemTitle          string
	Count              int
	EarliestBorrowedAt time.Time
}

// ReturnGroup aggregates closed borrow records per (patron, item).
type ReturnGroup struct {
	PatronID         uuid.UUID
	ItemID           uuid.UUID
	ItemTitle        string
	Count            int
	LatestReturnedAt time.Time
}
