package itemavailability

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	ItemStock(ctx context.Context, itemID uuid.UUID) (rental.ItemStock, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads the stock of the item and projects its availability.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ItemAvailability, error) {
	ctx = rental.WithEventualConsistency(ctx)

	stock, err := h.readModel.ItemStock(ctx, query.ItemID)
	if err != nil {
		return ItemAvailability{}, err
	}

	return Project(stock), nil
}
