package gearcatalog

import (
	"context"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	Libraries(ctx context.Context) ([]rental.Library, error)
	Collections(ctx context.Context) ([]rental.Collection, error)
	ItemStocks(ctx context.Context, filter rental.ItemFilter) ([]rental.ItemStock, error)
	Memberships(ctx context.Context) ([]rental.Membership, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads everything the catalog may list and projects what the actor may see.
func (h QueryHandler) Handle(ctx context.Context, query Query) (GearCatalog, error) {
	ctx = rental.WithEventualConsistency(ctx)

	libraries, err := h.readModel.Libraries(ctx)
	if err != nil {
		return GearCatalog{}, err
	}

	collections, err := h.readModel.Collections(ctx)
	if err != nil {
		return GearCatalog{}, err
	}

	stocks, err := h.readModel.ItemStocks(ctx, rental.ItemFilter{})
	if err != nil {
		return GearCatalog{}, err
	}

	memberships, err := h.readModel.Memberships(ctx)
	if err != nil {
		return GearCatalog{}, err
	}

	return Project(query, libraries, collections, stocks, memberships), nil
}
