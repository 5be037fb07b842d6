package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow inside one transaction: load state, decide, write, append.
// Implementations should focus purely on business logic without observability concerns.
// Handlers return HandlerResult containing business outcomes (idempotency) and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that build a read model for a query.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
