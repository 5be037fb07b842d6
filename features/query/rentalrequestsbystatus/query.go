package rentalrequestsbystatus

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	queryType = "RentalRequestsByStatus"
)

// Query represents the input for listing rental requests. An empty Status lists all of them.
type Query struct {
	Status   rental.RequestStatus
	PatronID uuid.NullUUID
}

// BuildQuery creates a new Query. Returns an InvalidInput violation for an unknown status.
func BuildQuery(status string, patronID uuid.NullUUID) (Query, error) {
	switch s := rental.RequestStatus(status); s {
	case "", rental.RequestStatusPending, rental.RequestStatusApproved, rental.RequestStatusRejected:
		return Query{Status: s, PatronID: patronID}, nil
	default:
		return Query{}, rental.NewInvalidInput(fmt.Sprintf("Unknown request status '%s'.", status))
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
