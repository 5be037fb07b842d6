package currentlyborrowed

import "github.com/google/uuid"

const (
	queryType = "CurrentlyBorrowed"
)

// Query represents the input for listing units currently on loan. An invalid PatronID lists all patrons.
type Query struct {
	PatronID uuid.NullUUID
}

// BuildQuery creates a new Query over all patrons.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForPatron creates a new Query restricted to one patron.
func BuildQueryForPatron(patronID uuid.UUID) Query {
	return Query{PatronID: uuid.NullUUID{UUID: patronID, Valid: true}}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
