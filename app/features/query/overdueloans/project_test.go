package overdueloans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-management-api/app/features/query/overdueloans"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

var fakeClock = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func loanDueAt(id int64, due time.Time) librarystore.LoanDetails {
	return librarystore.LoanDetails{
		Loan: librarystore.Loan{ID: id, IssueDate: due.AddDate(0, 0, -14), DueDate: due},
	}
}

func Test_Project_FiltersAndSortsByDaysOverdue(t *testing.T) {
	// arrange
	loans := []librarystore.LoanDetails{
		loanDueAt(1, fakeClock.AddDate(0, 0, -2)),
		loanDueAt(2, fakeClock.AddDate(0, 0, 3)),
		loanDueAt(3, fakeClock.AddDate(0, 0, -9)),
		loanDueAt(4, fakeClock),
		loanDueAt(5, fakeClock.Add(-time.Second)),
	}

	// act
	result := overdueloans.Project(loans, fakeClock)

	// assert
	assert.Equal(t, 3, result.Count)

	ids := make([]int64, 0, result.Count)
	days := make([]int, 0, result.Count)
	for _, loan := range result.Loans {
		ids = append(ids, loan.LoanID)
		days = append(days, loan.DaysOverdue)
	}

	assert.Equal(t, []int64{3, 1, 5}, ids)
	assert.Equal(t, []int{9, 2, 1}, days)
}

func Test_Project_EmptyInput(t *testing.T) {
	// act
	result := overdueloans.Project(nil, fakeClock)

	// assert
	assert.Zero(t, result.Count)
	assert.NotNil(t, result.Loans)
}
