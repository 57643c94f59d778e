package core

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// LoanSummary is the shape in which loans leave the application.
type LoanSummary struct {
	LoanID      LoanID     `json:"loanId"`
	BookID      BookID     `json:"bookId"`
	BookTitle   string     `json:"bookTitle"`
	StudentID   StudentID  `json:"studentId"`
	StudentName string     `json:"studentName"`
	IssueDate   time.Time  `json:"issueDate"`
	DueDate     time.Time  `json:"dueDate"`
	ReturnDate  *time.Time `json:"returnDate"`
	IsReturned  bool       `json:"isReturned"`
	IsOverdue   bool       `json:"isOverdue"`
	DaysOverdue int        `json:"daysOverdue"`
}

// ToLoanSummary derives the overdue fields of a stored loan at now.
// Returned loans are never overdue.
func ToLoanSummary(loan librarystore.LoanDetails, now time.Time) LoanSummary {
	summary := LoanSummary{
		LoanID:      loan.ID,
		BookID:      loan.BookID,
		BookTitle:   loan.BookTitle,
		StudentID:   loan.StudentID,
		StudentName: loan.StudentName,
		IssueDate:   loan.IssueDate,
		DueDate:     loan.DueDate,
		ReturnDate:  loan.ReturnDate,
		IsReturned:  loan.IsReturned,
	}

	if !loan.IsReturned {
		summary.IsOverdue = IsOverdue(now, loan.DueDate)
		summary.DaysOverdue = DaysOverdue(now, loan.DueDate)
	}

	return summary
}

// ToLoanSummaries maps a list of stored loans with ToLoanSummary.
func ToLoanSummaries(loans []librarystore.LoanDetails, now time.Time) []LoanSummary {
	summaries := make([]LoanSummary, 0, len(loans))
	for _, loan := range loans {
		summaries = append(summaries, ToLoanSummary(loan, now))
	}

	return summaries
}
