package currentlyborrowed

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	OpenBorrowGroups(ctx context.Context, patronID uuid.NullUUID) ([]rental.BorrowGroup, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads the open borrow groups and projects them.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CurrentlyBorrowed, error) {
	ctx = rental.WithEventualConsistency(ctx)

	groups, err := h.readModel.OpenBorrowGroups(ctx, query.PatronID)
	if err != nil {
		return CurrentlyBorrowed{}, err
	}

	return Project(groups), nil
}
