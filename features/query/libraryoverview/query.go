package libraryoverview

const (
	queryType = "LibraryOverview"
)

// Query represents the input for the overview of all libraries. It has no parameters.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
