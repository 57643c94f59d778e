package returnbook

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	msgReturned        = "Book returned successfully!"
	msgReturnedOverdue = "Book returned successfully! The book was overdue."
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	LoanByID(ctx context.Context, loanID int64) (librarystore.LoanDetails, error)
	ReturnLoan(ctx context.Context, loanID int64, returnedAt time.Time) (librarystore.LoanDetails, bool, error)
}

// Result is the outcome of a successful return.
type Result struct {
	Message     string           `json:"message"`
	DaysOverdue int              `json:"daysOverdue"`
	Issue       core.LoanSummary `json:"issue"`
	Restocked   bool             `json:"-"`
}

// CommandHandler orchestrates the return workflow: Load -> Decide -> Write, with retry on
// concurrency conflicts.
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

// Handle executes the return with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult[Result], error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult[Result](retryMetrics), err
	}

	return shell.NewSuccessResult(result, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	var s State
	loan, err := h.store.LoanByID(ctx, command.LoanID)
	switch {
	case err == nil:
		s = State{Loan: loan, LoanFound: true}
	case !errors.Is(err, librarystore.ErrRecordNotFound):
		return Result{}, core.FromStoreError(err, resourceLoan, command.LoanID)
	}

	if decisionErr := Decide(s, command).HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	daysOverdue := DaysOverdue(s, command)

	returned, restocked, err := h.store.ReturnLoan(ctx, command.LoanID, command.ReturnedAt)
	if err != nil {
		return Result{}, core.FromStoreError(err, resourceLoan, command.LoanID)
	}

	message := msgReturned
	if daysOverdue > 0 {
		message = msgReturnedOverdue
	}

	return Result{
		Message:     message,
		DaysOverdue: daysOverdue,
		Issue:       core.ToLoanSummary(returned, command.ReturnedAt),
		Restocked:   restocked,
	}, nil
}
