package unreadnotifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	PatronProfile(ctx context.Context, patronID uuid.UUID) (rental.Patron, error)
	CountDecidedRentalRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error)
	CountDecidedAccessRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle counts the requests decided since the patron last looked at each kind of notification.
// A patron who never looked has every decided request unread.
func (h QueryHandler) Handle(ctx context.Context, query Query) (UnreadNotifications, error) {
	ctx = rental.WithEventualConsistency(ctx)

	patron, err := h.readModel.PatronProfile(ctx, query.PatronID)
	if err != nil {
		return UnreadNotifications{}, err
	}

	rentals, err := h.readModel.CountDecidedRentalRequests(ctx, patron.ID, patron.RentalsLastViewedAt)
	if err != nil {
		return UnreadNotifications{}, err
	}

	access, err := h.readModel.CountDecidedAccessRequests(ctx, patron.ID, patron.AccessRequestsLastViewedAt)
	if err != nil {
		return UnreadNotifications{}, err
	}

	return Project(patron.ID, rentals, access), nil
}
