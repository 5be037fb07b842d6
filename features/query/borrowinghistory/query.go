package borrowinghistory

import "github.com/google/uuid"

const (
	queryType = "BorrowingHistory"
)

// Query represents the input for the borrowing history of one patron.
type Query struct {
	PatronID uuid.UUID
}

// BuildQuery creates a new Query for the given patron.
func BuildQuery(patronID uuid.UUID) Query {
	return Query{PatronID: patronID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
