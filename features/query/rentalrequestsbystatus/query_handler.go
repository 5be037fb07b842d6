package rentalrequestsbystatus

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	RentalRequests(ctx context.Context, filter rental.RentalRequestFilter) ([]rental.RentalRequest, error)
	CountRentalRequestsByStatus(ctx context.Context, patronID uuid.NullUUID) (map[rental.RequestStatus]int, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads the matching requests and the status counts and projects them.
func (h QueryHandler) Handle(ctx context.Context, query Query) (RentalRequests, error) {
	ctx = rental.WithEventualConsistency(ctx)

	requests, err := h.readModel.RentalRequests(ctx, rental.RentalRequestFilter{Status: query.Status, PatronID: query.PatronID})
	if err != nil {
		return RentalRequests{}, err
	}

	counts, err := h.readModel.CountRentalRequestsByStatus(ctx, query.PatronID)
	if err != nil {
		return RentalRequests{}, err
	}

	return Project(requests, counts), nil
}
