package activeloans

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	Loans(ctx context.Context, filter librarystore.LoanFilter) ([]librarystore.LoanDetails, error)
}

// QueryHandler lists active loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the unreturned loans, the store already orders them newest first.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveLoans, error) {
	loans, err := h.store.Loans(
		librarystore.WithEventualConsistency(ctx),
		librarystore.LoanFilter{ActiveOnly: true},
	)
	if err != nil {
		return ActiveLoans{}, core.Internal(err)
	}

	summaries := core.ToLoanSummaries(loans, query.Now)

	return ActiveLoans{Loans: summaries, Count: len(summaries)}, nil
}
