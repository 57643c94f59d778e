package shell

import "context"

// Command represents the contract for all command types of the library.
// The CommandType method enables polymorphic handling and observability instrumentation.
// Implementations return a constant, so the zero value already knows its type.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types of the library.
type Query interface {
	QueryType() string
}

// CommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete workflow: load state, decide, write.
// Handlers return a HandlerResult carrying the outcome value and execution metadata (retry info).
// Observability is added from the outside, see the observable package.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (HandlerResult[R], error)
}

// QueryHandler defines the contract for components that answer queries with read-only projections.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
