package librarystore

import "context"

// ConsistencyLevel defines the consistency requirements for read operations of a store.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database. Command handlers use it for their
	// read-check-write cycles so they always see the latest committed state.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database. Suitable for list queries that can
	// tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "librarystore.consistency_level"

// WithStrongConsistency returns a context that routes store reads to the primary database.
//
// Example usage:
//
//	ctx = librarystore.WithStrongConsistency(ctx)
//	book, err := store.BookByID(ctx, bookID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows store reads to be served by a replica.
//
// Example usage:
//
//	ctx = librarystore.WithEventualConsistency(ctx)
//	loans, err := store.Loans(ctx, librarystore.LoanFilter{ActiveOnly: true})
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// StrongConsistency is returned when none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging.
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
