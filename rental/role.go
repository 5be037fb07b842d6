package rental

import (
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownRole is returned when a role string cannot be parsed.
var ErrUnknownRole = errors.New("unknown role")

// Role is the single enumerated role of a caller.
type Role int

const (
	RoleLibrarian Role = iota + 1
	RolePatron
)

func (r Role) String() string {
	switch r {
	case RoleLibrarian:
		return "librarian"
	case RolePatron:
		return "patron"
	default:
		return "unknown"
	}
}

// ParseRole converts the textual role supplied by the identity layer.
func ParseRole(s string) (Role, error) {
	switch s {
	case "librarian":
		return RoleLibrarian, nil
	case "patron":
		return RolePatron, nil
	default:
		return 0, errors.Join(ErrUnknownRole, errors.New(s))
	}
}

// Actor is the caller identity as supplied by the identity layer. The engine trusts the role.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Librarian builds a librarian actor.
func Librarian(id uuid.UUID) Actor {
	return Actor{ID: id, Role: RoleLibrarian}
}

// PatronActor builds a patron actor.
func PatronActor(id uuid.UUID) Actor {
	return Actor{ID: id, Role: RolePatron}
}

// Action is an operation that is gated by role.
type Action int

const (
	ActionRegisterPatron Action = iota + 1
	ActionRegisterLibrary
	ActionRegisterItem
	ActionChangeItemQuantity
	ActionSubmitRentalRequest
	ActionApproveRentalRequest
	ActionDenyRentalRequest
	ActionCancelRentalRequest
	ActionRecordBorrow
	ActionReturnBorrowedUnits
	ActionCreateCollection
	ActionEditCollection
	ActionSubmitAccessRequest
	ActionApproveAccessRequest
	ActionDenyAccessRequest
	ActionCancelAccessRequest
	ActionMarkNotificationsViewed
)

var actionDescriptions = map[Action]string{
	ActionRegisterPatron:          "register patrons",
	ActionRegisterLibrary:         "register libraries",
	ActionRegisterItem:            "register items",
	ActionChangeItemQuantity:      "change item quantities",
	ActionSubmitRentalRequest:     "request rentals",
	ActionApproveRentalRequest:    "approve rental requests",
	ActionDenyRentalRequest:       "deny rental requests",
	ActionCancelRentalRequest:     "cancel rental requests",
	ActionRecordBorrow:            "lend items without a request",
	ActionReturnBorrowedUnits:     "process returns",
	ActionCreateCollection:        "create collections",
	ActionEditCollection:          "edit collections",
	ActionSubmitAccessRequest:     "request access to private collections",
	ActionApproveAccessRequest:    "approve access requests",
	ActionDenyAccessRequest:       "deny access requests",
	ActionCancelAccessRequest:     "cancel access requests",
	ActionMarkNotificationsViewed: "view notifications",
}

func (a Action) String() string {
	if d, ok := actionDescriptions[a]; ok {
		return d
	}

	return "perform this action"
}

// Authorize checks the role gate of an action. Instance ownership (e.g. only the requesting patron may cancel)
// is checked by the individual operations on top of this.
func Authorize(actor Actor, action Action) error {
	switch actor.Role {
	case RoleLibrarian:
		switch action {
		case ActionSubmitRentalRequest, ActionCancelRentalRequest,
			ActionSubmitAccessRequest, ActionCancelAccessRequest, ActionMarkNotificationsViewed:
			return NewForbidden(action.String())
		default:
			return nil
		}

	case RolePatron:
		switch action {
		case ActionSubmitRentalRequest, ActionCancelRentalRequest, ActionCreateCollection, ActionEditCollection,
			ActionSubmitAccessRequest, ActionCancelAccessRequest, ActionMarkNotificationsViewed:
			return nil
		default:
			return NewForbidden(action.String())
		}

	default:
		return NewForbidden(action.String())
	}
}
