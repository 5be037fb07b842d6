package returnborrowedunits

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

// Engine defines the interface needed by the CommandHandler.
type Engine interface {
	WithinTransaction(ctx context.Context, fn rental.TxFunc) error
}

// CommandHandler orchestrates the command processing workflow: Lock -> Decide -> Close -> Recompute -> Append, with retry.
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
	if err := rental.Authorize(command.Actor, rental.ActionReturnBorrowedUnits); err != nil {
		return core.ErrorDecision(err), err
	}

	if err := ValidateQuantity(command.Quantity); err != nil {
		return core.ErrorDecision(err), err
	}

	var decision core.DecisionResult

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		patron, err := tx.Patron(ctx, command.PatronID)
		if err != nil {
			return err
		}

		item, err := tx.LockItem(ctx, command.ItemID)
		if err != nil {
			return err
		}

		outstanding, err := tx.CountOpenBorrowsByPatron(ctx, item.ID, patron.ID)
		if err != nil {
			return err
		}

		var locked []rental.BorrowRecord
		if command.Quantity > 0 && command.Quantity <= outstanding {
			locked, err = tx.LockOldestOpenBorrows(ctx, item.ID, patron.ID, command.Quantity)
			if err != nil {
				return err
			}
		}

		openBorrows, err := tx.CountOpenBorrows(ctx, item.ID)
		if err != nil {
			return err
		}

		decision = Decide(State{
			Item:        item,
			PatronName:  patron.Name,
			OpenBorrows: openBorrows,
			Outstanding: outstanding,
			Locked:      locked,
		}, command)
		if err = decision.HasError(); err != nil {
			return err
		}

		event := decision.Event.(core.BorrowedUnitsReturned) //nolint:forcetypeassert // Decide only returns this event

		recordIDs := make([]uuid.UUID, 0, len(locked))
		for _, r := range locked {
			recordIDs = append(recordIDs, r.ID)
		}

		closed, err := tx.CloseBorrowRecords(ctx, recordIDs, command.OccurredAt)
		if err != nil {
			return err
		}

		if closed != int64(len(recordIDs)) {
			return rental.NewConflict(fmt.Sprintf("expected to close %d borrow record(s), closed %d", len(recordIDs), closed))
		}

		if err = tx.UpdateItemStock(ctx, item.ID, item.Quantity, rental.ItemStatus(event.Status)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, event, command.Actor)
	})

	return decision, err
}
