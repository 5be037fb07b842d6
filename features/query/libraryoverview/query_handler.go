package libraryoverview

import (
	"context"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	Libraries(ctx context.Context) ([]rental.Library, error)
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

// Handle reads all libraries and items and projects the overview.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (LibraryOverview, error) {
	ctx = rental.WithEventualConsistency(ctx)

	libraries, err := h.readModel.Libraries(ctx)
	if err != nil {
		return LibraryOverview{}, err
	}

	stocks, err := h.readModel.ItemStocks(ctx, rental.ItemFilter{})
	if err != nil {
		return LibraryOverview{}, err
	}

	return Project(libraries, stocks), nil
}
