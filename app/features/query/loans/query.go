package loans

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	queryType     = "Loans"
	byIDQueryType = "LoanByID"
)

// Query lists loans, optionally restricted to one student or one book.
type Query struct {
	StudentID core.StudentID
	BookID    core.BookID
	Now       time.Time
}

// BuildQuery creates a Query over all loans.
func BuildQuery(now time.Time) Query {
	return Query{Now: core.ToTimestamp(now)}
}

// BuildByStudentQuery creates a Query over the loans of one student.
func BuildByStudentQuery(studentID core.StudentID, now time.Time) Query {
	return Query{StudentID: studentID, Now: core.ToTimestamp(now)}
}

// BuildByBookQuery creates a Query over the loans of one book.
func BuildByBookQuery(bookID core.BookID, now time.Time) Query {
	return Query{BookID: bookID, Now: core.ToTimestamp(now)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// ByIDQuery looks up a single loan.
type ByIDQuery struct {
	LoanID core.LoanID
	Now    time.Time
}

// BuildByIDQuery creates a new ByIDQuery.
func BuildByIDQuery(loanID core.LoanID, now time.Time) ByIDQuery {
	return ByIDQuery{LoanID: loanID, Now: core.ToTimestamp(now)}
}

// QueryType returns the query type.
func (q ByIDQuery) QueryType() string {
	return byIDQueryType
}
