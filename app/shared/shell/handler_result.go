package shell

import (
	"context"
	"time"
)

// HandlerResult represents the outcome of a command handler execution.
// It carries the value the command produced and execution metadata (retry information)
// without coupling the handler to specific observability implementations.
type HandlerResult[R any] struct {
	// Value is the outcome of a successful command, the zero value otherwise.
	Value R

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays, excluding execution time.
	TotalRetryDelay time.Duration

	// LastErrorType describes the last error seen by the retry loop.
	// Values: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted is true only when all attempts failed with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a successful command.
func NewSuccessResult[R any](value R, retryMetrics RetryMetrics) HandlerResult[R] {
	return HandlerResult[R]{
		Value:            value,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewErrorResult creates a HandlerResult for a failed command, keeping its retry metadata.
func NewErrorResult[R any](retryMetrics RetryMetrics) HandlerResult[R] {
	return HandlerResult[R]{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// HandleWithRetry runs fn with RetryWithExponentialBackoff and packs its value together with the
// retry metadata.
func HandleWithRetry[R any](
	ctx context.Context,
	fn func(ctx context.Context) (R, error),
	options ...RetryOption,
) (HandlerResult[R], error) {

	var value R

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		value, execErr = fn(retryCtx)

		return execErr
	}, options...)

	if err != nil {
		return NewErrorResult[R](retryMetrics), err
	}

	return NewSuccessResult(value, retryMetrics), nil
}
