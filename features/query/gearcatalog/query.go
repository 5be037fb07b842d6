package gearcatalog

import (
	"slices"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	queryType = "GearCatalog"
)

// Query represents the input for the catalog of one actor. An empty Kinds means all kinds.
type Query struct {
	Actor rental.Actor
	Kinds []rental.GearKind
}

// BuildQuery creates a new Query.
func BuildQuery(actor rental.Actor, kinds ...rental.GearKind) Query {
	return Query{Actor: actor, Kinds: kinds}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Includes reports whether the query asks for the kind.
func (q Query) Includes(kind rental.GearKind) bool {
	return len(q.Kinds) == 0 || slices.Contains(q.Kinds, kind)
}
