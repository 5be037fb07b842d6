package unreadnotifications

import "github.com/google/uuid"

const (
	queryType = "UnreadNotifications"
)

// Query represents the input for counting the unread notifications of a patron.
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
