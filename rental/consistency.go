package rental

import "context"

// ConsistencyLevel defines the consistency requirements for engine reads.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database.
	// Transactions always run on the primary, regardless of this setting.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows read model queries to use a replica database,
	// trading freshness for a reduced load on the primary.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "rental.consistency_level"

// WithStrongConsistency returns a context that routes read model queries to the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows read model queries to use a replica.
//
// Example usage:
//
//	ctx = rental.WithEventualConsistency(ctx)
//	groups, err := engine.OpenBorrowGroups(ctx, uuid.NullUUID{})
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context, defaulting to StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
