package itemactivity

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

// ReadModel is the part of the engine the QueryHandler reads from.
type ReadModel interface {
	ItemStock(ctx context.Context, itemID uuid.UUID) (rental.ItemStock, error)
	ItemEvents(ctx context.Context, itemID uuid.UUID) (rental.StorableEvents, error)
}

// QueryHandler orchestrates the query processing workflow: Read -> Decode -> Project.
type QueryHandler struct {
	readModel ReadModel
}

// NewQueryHandler creates a new QueryHandler with the provided ReadModel dependency.
func NewQueryHandler(readModel ReadModel) QueryHandler {
	return QueryHandler{readModel: readModel}
}

// Handle reads the audit events of the item, decodes them and projects the activity log.
// An unknown item is reported as rental.ErrNotFound rather than as an empty log.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ItemActivity, error) {
	ctx = rental.WithEventualConsistency(ctx)

	if _, err := h.readModel.ItemStock(ctx, query.ItemID); err != nil {
		return ItemActivity{}, err
	}

	storableEvents, err := h.readModel.ItemEvents(ctx, query.ItemID)
	if err != nil {
		return ItemActivity{}, err
	}

	events, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return ItemActivity{}, err
	}

	return Project(query.ItemID, events), nil
}
