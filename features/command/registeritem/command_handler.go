package registeritem

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

// CommandHandler orchestrates the command processing workflow: Decide -> Write -> Append, with retry.
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
	if err := rental.Authorize(command.Actor, rental.ActionRegisterItem); err != nil {
		return core.ErrorDecision(err), err
	}

	decision := Decide(command)
	if err := decision.HasError(); err != nil {
		return decision, err
	}

	event := decision.Event.(core.ItemRegistered) //nolint:forcetypeassert // Decide only returns this event

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		item := rental.Item{
			ID:          command.ItemID,
			LibraryID:   command.LibraryID,
			Title:       event.Title,
			Description: event.Description,
			Location:    event.Location,
			Quantity:    event.Quantity,
			Status:      rental.StatusFor(event.Quantity),
			CreatedAt:   command.OccurredAt,
		}

		if err := tx.InsertItem(ctx, item); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, event, command.Actor)
	})

	return decision, err
}
