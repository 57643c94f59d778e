package loans

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceLoan    = "Loan"
	resourceBook    = "Book"
	resourceStudent = "Student"
)

// Store defines the store operations needed by the query handlers.
type Store interface {
	BookByID(ctx context.Context, id int64) (librarystore.Book, error)
	StudentByID(ctx context.Context, id int64) (librarystore.Student, error)
	LoanByID(ctx context.Context, loanID int64) (librarystore.LoanDetails, error)
	Loans(ctx context.Context, filter librarystore.LoanFilter) ([]librarystore.LoanDetails, error)
}

// QueryHandler lists loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists the loans of the query, newest issue date first. A restriction to a student or a
// book that does not exist yields NotFound instead of an empty list.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Loans, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	if query.StudentID != 0 {
		if _, err := h.store.StudentByID(ctx, query.StudentID); err != nil {
			return Loans{}, core.FromStoreError(err, resourceStudent, query.StudentID)
		}
	}

	if query.BookID != 0 {
		if _, err := h.store.BookByID(ctx, query.BookID); err != nil {
			return Loans{}, core.FromStoreError(err, resourceBook, query.BookID)
		}
	}

	loans, err := h.store.Loans(ctx, librarystore.LoanFilter{BookID: query.BookID, StudentID: query.StudentID})
	if err != nil {
		return Loans{}, core.Internal(err)
	}

	summaries := core.ToLoanSummaries(loans, query.Now)

	return Loans{Loans: summaries, Count: len(summaries)}, nil
}

// ByIDQueryHandler looks up single loans.
type ByIDQueryHandler struct {
	store Store
}

// NewByIDQueryHandler creates a new ByIDQueryHandler.
func NewByIDQueryHandler(store Store) ByIDQueryHandler {
	return ByIDQueryHandler{store: store}
}

// Handle returns the loan, NotFound when it is missing or deleted.
func (h ByIDQueryHandler) Handle(ctx context.Context, query ByIDQuery) (core.LoanSummary, error) {
	loan, err := h.store.LoanByID(librarystore.WithEventualConsistency(ctx), query.LoanID)
	if err != nil {
		return core.LoanSummary{}, core.FromStoreError(err, resourceLoan, query.LoanID)
	}

	return core.ToLoanSummary(loan, query.Now), nil
}
