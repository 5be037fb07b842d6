package setcollectionitems

import (
	"context"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

// Engine defines the interface needed by the CommandHandler.
type Engine interface {
	WithinTransaction(ctx context.Context, fn rental.TxFunc) error
}

// CommandHandler orchestrates the command processing workflow: Lock -> Guard -> Decide -> Write -> Append, with retry.
type CommandHandler struct {
	engine       Engine
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(engine Engine, opts ...Option) CommandHandler {
	handler := CommandHandler{engine: engine}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command inside one transaction and retries it on rental.ErrConflict.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	return shell.ResultFor(retryMetrics, decision, err)
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	if err := rental.Authorize(command.Actor, rental.ActionEditCollection); err != nil {
		return core.ErrorDecision(err), err
	}

	var decision core.DecisionResult

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		collection, err := tx.LockCollection(ctx, command.CollectionID)
		if err != nil {
			return err
		}

		current, err := tx.CollectionItemIDs(ctx, collection.ID)
		if err != nil {
			return err
		}

		items, err := tx.LockItems(ctx, command.ItemIDs)
		if err != nil {
			return err
		}

		memberships, err := tx.MembershipsOf(ctx, command.ItemIDs)
		if err != nil {
			return err
		}

		plan, planErr := rental.GuardMemberships(collection, items, memberships)
		state := State{Collection: collection, CurrentItemIDs: current, Plan: plan, PlanErr: planErr}

		decision = Decide(state, command)
		if err = decision.HasError(); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			return nil
		}

		unlink := plan.Evict
		for _, id := range state.Removed(command.ItemIDs) {
			unlink = append(unlink, rental.CollectionItem{CollectionID: collection.ID, ItemID: id})
		}

		if err = tx.UnlinkItems(ctx, unlink); err != nil {
			return err
		}

		if err = tx.LinkItems(ctx, collection.ID, plan.Link); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, decision.Event, command.Actor)
	})

	return decision, err
}
