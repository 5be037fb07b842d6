package borrowinghistory

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	OpenBorrowGroups(ctx context.Context, patronID uuid.NullUUID) ([]rental.BorrowGroup, error)
	ReturnedBorrowGroups(ctx context.Context, patronID uuid.UUID) ([]rental.ReturnGroup, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads the open and returned borrow groups of the patron and projects them.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BorrowingHistory, error) {
	ctx = rental.WithEventualConsistency(ctx)

	open, err := h.readModel.OpenBorrowGroups(ctx, uuid.NullUUID{UUID: query.PatronID, Valid: true})
	if err != nil {
		return BorrowingHistory{}, err
	}

	returned, err := h.readModel.ReturnedBorrowGroups(ctx, query.PatronID)
	if err != nil {
		return BorrowingHistory{}, err
	}

	return Project(query.PatronID, open, returned), nil
}
