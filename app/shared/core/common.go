package core

import "time"

// AuthorID identifies an author.
type AuthorID = int64

// BookID identifies a book.
type BookID = int64

// StudentID identifies a student.
type StudentID = int64

// LoanID identifies a loan.
type LoanID = int64

// UserID identifies an API user.
type UserID = int64

// ToTimestamp normalizes a time to UTC with microsecond precision, the precision Postgres keeps.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
