package createcollection

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
	if err := rental.Authorize(command.Actor, rental.ActionCreateCollection); err != nil {
		return core.ErrorDecision(err), err
	}

	var decision core.DecisionResult

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		items, err := tx.LockItems(ctx, command.ItemIDs)
		if err != nil {
			return err
		}

		memberships, err := tx.MembershipsOf(ctx, rental.SortedUniqueIDs(command.ItemIDs))
		if err != nil {
			return err
		}

		target := command.Target()
		plan, planErr := rental.GuardMemberships(target, items, memberships)

		decision = Decide(State{Plan: plan, PlanErr: planErr}, command)
		if err = decision.HasError(); err != nil {
			return err
		}

		event := decision.Event.(core.CollectionCreated) //nolint:forcetypeassert // Decide only returns this event

		target.Title = event.Title
		target.Description = event.Description

		if err = tx.InsertCollection(ctx, target); err != nil {
			return err
		}

		if err = tx.UnlinkItems(ctx, plan.Evict); err != nil {
			return err
		}

		if err = tx.LinkItems(ctx, target.ID, plan.Link); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, event, command.Actor)
	})

	return decision, err
}
