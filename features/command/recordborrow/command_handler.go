package recordborrow

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

// Engine defines the interface needed by the CommandHandler.
type Engine interface {
	WithinTransaction(ctx context.Context, fn rental.TxFunc) error
}

// CommandHandler orchestrates the command processing workflow: Lock -> Decide -> Write -> Append, with retry.
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
	if err := rental.Authorize(command.Actor, rental.ActionRecordBorrow); err != nil {
		return core.ErrorDecision(err), err
	}

	var decision core.DecisionResult

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		if _, err := tx.Patron(ctx, command.PatronID); err != nil {
			return err
		}

		item, err := tx.LockItem(ctx, command.ItemID)
		if err != nil {
			return err
		}

		openBorrows, err := tx.CountOpenBorrows(ctx, item.ID)
		if err != nil {
			return err
		}

		var recordIDs []uuid.UUID
		generate := func(n int) ([]uuid.UUID, error) {
			var genErr error
			recordIDs, genErr = rental.NewRecordIDs(n)

			return recordIDs, genErr
		}

		decision = Decide(State{Item: item, OpenBorrows: openBorrows, RecordIDs: generate}, command)
		if err = decision.HasError(); err != nil {
			return err
		}

		event := decision.Event.(core.BorrowRecorded) //nolint:forcetypeassert // Decide only returns this event

		records := make([]rental.BorrowRecord, 0, len(recordIDs))
		for _, id := range recordIDs {
			records = append(records, rental.BorrowRecord{
				ID:         id,
				ItemID:     item.ID,
				PatronID:   command.PatronID,
				BorrowedAt: command.OccurredAt,
			})
		}

		if err = tx.InsertBorrowRecords(ctx, records); err != nil {
			return err
		}

		if err = tx.UpdateItemStock(ctx, item.ID, item.Quantity, rental.ItemStatus(event.Status)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, event, command.Actor)
	})

	return decision, err
}
