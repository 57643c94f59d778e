package overdueloans

import (
	"context"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	Loans(ctx context.Context, filter librarystore.LoanFilter) ([]librarystore.LoanDetails, error)
}

// QueryHandler lists overdue loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the unreturned loans and projects the overdue ones.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	loans, err := h.store.Loans(
		librarystore.WithEventualConsistency(ctx),
		librarystore.LoanFilter{ActiveOnly: true},
	)
	if err != nil {
		return OverdueLoans{}, core.Internal(err)
	}

	return Project(loans, query.Now), nil
}
