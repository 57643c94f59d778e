package checkoutbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const msgCheckedOut = "Book checked out successfully!"

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	BookByID(ctx context.Context, id int64) (librarystore.Book, error)
	StudentByID(ctx context.Context, id int64) (librarystore.Student, error)
	HasActiveLoan(ctx context.Context, bookID int64, studentID int64) (bool, error)
	CheckoutBook(ctx context.Context, loan librarystore.Loan) (librarystore.Loan, error)
}

// Result is the outcome of a successful checkout.
type Result struct {
	Message string           `json:"message"`
	Issue   core.LoanSummary `json:"issue"`
}

// CommandHandler orchestrates the checkout workflow: Load -> Decide -> Write, with retry on
// concurrency conflicts. External wrappers handle all observability concerns.
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

// Handle executes the checkout with retry logic.
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

	s, err := h.load(ctx, command)
	if err != nil {
		return Result{}, core.FromStoreError(err, resourceBook, command.BookID)
	}

	if decisionErr := Decide(s, command).HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	loan, err := h.store.CheckoutBook(ctx, librarystore.Loan{
		BookID:    command.BookID,
		StudentID: command.StudentID,
		IssueDate: command.IssuedAt,
		DueDate:   command.DueDate(),
	})
	if err != nil {
		return Result{}, core.FromStoreError(err, resourceBook, command.BookID)
	}

	details := librarystore.LoanDetails{
		Loan:        loan,
		BookTitle:   s.Book.Title,
		StudentName: s.Student.Name,
	}

	return Result{
		Message: msgCheckedOut,
		Issue:   core.ToLoanSummary(details, command.IssuedAt),
	}, nil
}

// load reads the state Decide needs. Lookups stop at the first missing record because the
// rules after it cannot apply.
func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	var s State
	var err error

	s.Book, err = h.store.BookByID(ctx, command.BookID)
	if ok, lookupErr := recordFound(err); !ok {
		return s, lookupErr
	}
	s.BookFound = true

	if s.Book.AvailableCopies <= 0 {
		return s, nil
	}

	s.Student, err = h.store.StudentByID(ctx, command.StudentID)
	if ok, lookupErr := recordFound(err); !ok {
		return s, lookupErr
	}
	s.StudentFound = true

	s.HasActiveLoan, err = h.store.HasActiveLoan(ctx, command.BookID, command.StudentID)

	return s, err
}

// recordFound separates a missing record from a failed lookup.
func recordFound(err error) (bool, error) {
	if err == nil {
		return true, nil
	}

	if errors.Is(err, librarystore.ErrRecordNotFound) {
		return false, nil
	}

	return false, err
}
