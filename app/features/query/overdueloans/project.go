package overdueloans

import (
	"cmp"
	"slices"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Project keeps the loans overdue at now, most days overdue first. Ties keep the oldest due date
// first and then the lower loan id.
func Project(loans []librarystore.LoanDetails, now time.Time) OverdueLoans {
	overdue := make([]core.LoanSummary, 0, len(loans))

	for _, loan := range loans {
		summary := core.ToLoanSummary(loan, now)
		if summary.IsOverdue {
			overdue = append(overdue, summary)
		}
	}

	slices.SortFunc(overdue, func(a, b core.LoanSummary) int {
		return cmp.Or(
			cmp.Compare(b.DaysOverdue, a.DaysOverdue),
			a.DueDate.Compare(b.DueDate),
			cmp.Compare(a.LoanID, b.LoanID),
		)
	})

	return OverdueLoans{Loans: overdue, Count: len(overdue)}
}
