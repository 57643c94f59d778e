package deleteloan

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceLoan = "Loan"
	msgDeleted   = "Issue deleted successfully!"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	SoftDeleteLoan(ctx context.Context, loanID int64) (bool, error)
}

// Result is the outcome of a successful delete.
type Result struct {
	Message      string `json:"message"`
	CopyReleased bool   `json:"-"`
}

// CommandHandler soft-deletes loans, retrying on concurrency conflicts.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle deletes the loan. A missing loan is NotFound.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[Result], error) {
	var released bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		released, execErr = h.store.SoftDeleteLoan(librarystore.WithStrongConsistency(retryCtx), command.LoanID)

		return core.FromStoreError(execErr, resourceLoan, command.LoanID)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult[Result](retryMetrics), err
	}

	return shell.NewSuccessResult(Result{Message: msgDeleted, CopyReleased: released}, retryMetrics), nil
}
