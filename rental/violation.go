package rental

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind classifies a rule violation. Every operation reports failed preconditions as a *Violation
// carrying one of these kinds; anything else returned by an operation is an unexpected persistence failure.
type ErrorKind int

const (
	// KindDuplicateRequest means a pending request already exists for the same patron and target.
	KindDuplicateRequest ErrorKind = iota + 1
	// KindInsufficientStock means the requested quantity exceeds the available quantity.
	KindInsufficientStock
	// KindInvalidState means the transition is not allowed from the current state.
	KindInvalidState
	// KindForbidden means the actor is not authorized for this instance.
	KindForbidden
	// KindInvalidInput means a malformed quantity or argument.
	KindInvalidInput
	// KindNoOpenBorrow means the patron has no unreturned units of the item.
	KindNoOpenBorrow
	// KindExceedsOutstanding means more units should be returned than are outstanding.
	KindExceedsOutstanding
	// KindConflict means a concurrent modification was detected at lock time; the caller should retry.
	KindConflict
	// KindAlreadyInCollection means the item already belongs to a private collection.
	KindAlreadyInCollection
	// KindBelongsToPrivateCollection means a public membership was requested for a privately collected item.
	KindBelongsToPrivateCollection
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
)

var (
	ErrDuplicateRequest           = errors.New("duplicate request")
	ErrInsufficientStock          = errors.New("insufficient stock")
	ErrInvalidState               = errors.New("invalid state")
	ErrForbidden                  = errors.New("forbidden")
	ErrInvalidInput               = errors.New("invalid input")
	ErrNoOpenBorrow               = errors.New("no open borrow")
	ErrExceedsOutstanding         = errors.New("exceeds outstanding")
	ErrConflict                   = errors.New("concurrent modification conflict")
	ErrAlreadyInCollection        = errors.New("already in collection")
	ErrBelongsToPrivateCollection = errors.New("belongs to private collection")
	ErrNotFound                   = errors.New("not found")
)

// String returns the snake_case name of the kind, used for metric labels and API payloads.
func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateRequest:
		return "duplicate_request"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInvalidState:
		return "invalid_state"
	case KindForbidden:
		return "forbidden"
	case KindInvalidInput:
		return "invalid_input"
	case KindNoOpenBorrow:
		return "no_open_borrow"
	case KindExceedsOutstanding:
		return "exceeds_outstanding"
	case KindConflict:
		return "conflict"
	case KindAlreadyInCollection:
		return "already_in_collection"
	case KindBelongsToPrivateCollection:
		return "belongs_to_private_collection"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindDuplicateRequest:
		return ErrDuplicateRequest
	case KindInsufficientStock:
		return ErrInsufficientStock
	case KindInvalidState:
		return ErrInvalidState
	case KindForbidden:
		return ErrForbidden
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNoOpenBorrow:
		return ErrNoOpenBorrow
	case KindExceedsOutstanding:
		return ErrExceedsOutstanding
	case KindConflict:
		return ErrConflict
	case KindAlreadyInCollection:
		return ErrAlreadyInCollection
	case KindBelongsToPrivateCollection:
		return ErrBelongsToPrivateCollection
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Violation is a typed, user-presentable rule violation.
//
// errors.Is(err, ErrInsufficientStock) and friends match on the Kind, Error() returns the human-readable message.
// Outstanding is only set for KindExceedsOutstanding and carries the number of units actually on loan.
type Violation struct {
	Kind        ErrorKind
	Message     string
	Outstanding int
}

func (v *Violation) Error() string {
	return v.Message
}

// Unwrap exposes the sentinel error of the kind.
func (v *Violation) Unwrap() error {
	return v.Kind.sentinel()
}

// KindOf returns the ErrorKind of a violation anywhere in the error chain.
func KindOf(err error) (ErrorKind, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v.Kind, true
	}

	return 0, false
}

// IsViolation reports whether err is a typed rule violation rather than an unexpected failure.
func IsViolation(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// NewDuplicateRequest reports a second pending request for the same target.
func NewDuplicateRequest(targetTitle string) *Violation {
	return &Violation{
		Kind:    KindDuplicateRequest,
		Message: fmt.Sprintf("You already have a pending request for '%s'.", targetTitle),
	}
}

// NewInsufficientStock reports a request for more units than are currently available.
func NewInsufficientStock(itemTitle string, requested, available int) *Violation {
	return &Violation{
		Kind: KindInsufficientStock,
		Message: fmt.Sprintf(
			"Cannot rent %d unit(s) of '%s'. Only %d unit(s) are currently available.",
			requested, itemTitle, available,
		),
	}
}

// NewInvalidState reports a transition that is not allowed from the current status.
func NewInvalidState(entity string, id uuid.UUID, status string) *Violation {
	return &Violation{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("The %s %s is %s and can no longer be changed.", entity, id, status),
	}
}

// NewInvalidStateMessage reports a transition that is not allowed, with a custom message.
func NewInvalidStateMessage(message string) *Violation {
	return &Violation{Kind: KindInvalidState, Message: message}
}

// NewForbidden reports an actor that may not perform the action.
func NewForbidden(action string) *Violation {
	return &Violation{
		Kind:    KindForbidden,
		Message: fmt.Sprintf("You do not have permission to %s.", action),
	}
}

// NewInvalidInput reports a malformed argument.
func NewInvalidInput(message string) *Violation {
	return &Violation{Kind: KindInvalidInput, Message: message}
}

// NewNoOpenBorrow reports that the patron has nothing of the item to return.
func NewNoOpenBorrow(itemTitle, patronName string) *Violation {
	return &Violation{
		Kind:    KindNoOpenBorrow,
		Message: fmt.Sprintf("No unit(s) of '%s' are currently borrowed by %s.", itemTitle, patronName),
	}
}

// NewExceedsOutstanding reports a return of more units than the patron has on loan.
func NewExceedsOutstanding(requested, outstanding int, itemTitle, patronName string) *Violation {
	return &Violation{
		Kind: KindExceedsOutstanding,
		Message: fmt.Sprintf(
			"Cannot return %d units. Only %d unit(s) of '%s' are currently borrowed by %s.",
			requested, outstanding, itemTitle, patronName,
		),
		Outstanding: outstanding,
	}
}

// NewConflict reports a concurrent modification detected after acquiring locks.
func NewConflict(detail string) *Violation {
	return &Violation{
		Kind:    KindConflict,
		Message: "The data was changed concurrently, please try again: " + detail,
	}
}

// NewAlreadyInCollection reports an item that already belongs to another private collection.
func NewAlreadyInCollection(itemTitle, collectionTitle string) *Violation {
	return &Violation{
		Kind: KindAlreadyInCollection,
		Message: fmt.Sprintf(
			"Item '%s' already belongs to the private collection '%s'; it cannot be added to another private collection.",
			itemTitle, collectionTitle,
		),
	}
}

// NewBelongsToPrivateCollection reports an attempt to publish an item that is privately collected.
func NewBelongsToPrivateCollection(itemTitle, collectionTitle string) *Violation {
	return &Violation{
		Kind: KindBelongsToPrivateCollection,
		Message: fmt.Sprintf(
			"Item '%s' belongs to the private collection '%s'; it cannot be added to a public collection.",
			itemTitle, collectionTitle,
		),
	}
}

// NewNotFound reports a missing entity.
func NewNotFound(entity string, id uuid.UUID) *Violation {
	return &Violation{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("The %s %s does not exist.", entity, id),
	}
}
