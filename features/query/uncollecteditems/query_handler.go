package uncollecteditems

import (
	"context"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	ItemStocks(ctx context.Context, filter rental.ItemFilter) ([]rental.ItemStock, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads both filtered stock listings and projects them.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (UncollectedItems, error) {
	ctx = rental.WithEventualConsistency(ctx)

	notInAny, err := h.readModel.ItemStocks(ctx, rental.ItemFilter{NotInAnyCollection: true})
	if err != nil {
		return UncollectedItems{}, err
	}

	notInPrivate, err := h.readModel.ItemStocks(ctx, rental.ItemFilter{NotInPrivateCollections: true})
	if err != nil {
		return UncollectedItems{}, err
	}

	return Project(notInAny, notInPrivate), nil
}
