package itemactivity

import "github.com/google/uuid"

const (
	queryType = "ItemActivity"
)

// Query represents the input for the activity log of one item.
type Query struct {
	ItemID uuid.UUID
}

// BuildQuery creates a new Query for the given item.
func BuildQuery(itemID uuid.UUID) Query {
	return Query{ItemID: itemID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
