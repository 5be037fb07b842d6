package approverentalrequest

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
	if err := rental.Authorize(command.Actor, rental.ActionApproveRentalRequest); err != nil {
		return core.ErrorDecision(err), err
	}

	var decision core.DecisionResult

	err := h.engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		request, err := tx.LockRentalRequest(ctx, command.RequestID)
		if err != nil {
			return err
		}

		item, err := tx.LockItem(ctx, request.ItemID)
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

		decision = Decide(State{Request: request, Item: item, OpenBorrows: openBorrows, RecordIDs: generate}, command)
		if err = decision.HasError(); err != nil {
			return err
		}

		event := decision.Event.(core.RentalRequestApproved) //nolint:forcetypeassert // Decide only returns this event

		records := make([]rental.BorrowRecord, 0, len(recordIDs))
		for _, id := range recordIDs {
			records = append(records, rental.BorrowRecord{
				ID:              id,
				ItemID:          item.ID,
				PatronID:        request.PatronID,
				RentalRequestID: uuid.NullUUID{UUID: request.ID, Valid: true},
				BorrowedAt:      event.RentStartDate,
			})
		}

		if err = tx.InsertBorrowRecords(ctx, records); err != nil {
			return err
		}

		request.Status = rental.RequestStatusApproved
		request.ApproverID = uuid.NullUUID{UUID: command.Actor.ID, Valid: true}
		request.ApprovedDate = &event.OccurredAt
		request.RentStartDate = &event.RentStartDate
		request.RentReturnDate = &event.RentReturnDate

		if err = tx.UpdateRentalRequest(ctx, request); err != nil {
			return err
		}

		if err = tx.UpdateItemStock(ctx, item.ID, item.Quantity, rental.ItemStatus(event.Status)); err != nil {
			return err
		}

		return shell.AppendDomainEvent(ctx, tx, event, command.Actor)
	})

	return decision, err
}
