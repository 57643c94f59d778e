package core

import (
	"math"
	"time"
)

// DefaultBorrowDays is the loan period used when a checkout does not ask for one.
const DefaultBorrowDays = 14

const day = 24 * time.Hour

// BorrowDaysOrDefault returns DefaultBorrowDays for 0, the given value otherwise.
// Negative values are rejected by ValidateBorrowDays before.
func BorrowDaysOrDefault(borrowDays int) int {
	if borrowDays == 0 {
		return DefaultBorrowDays
	}

	return borrowDays
}

// ValidateBorrowDays rejects negative loan periods.
func ValidateBorrowDays(borrowDays int) error {
	if borrowDays < 0 {
		return ValidationField("borrowDays", "borrowDays must not be negative")
	}

	return nil
}

// DueDate is the issue date plus the loan period in calendar days.
func DueDate(issueDate time.Time, borrowDays int) time.Time {
	return issueDate.AddDate(0, 0, borrowDays)
}

// IsOverdue reports whether now is past the due date.
func IsOverdue(now, dueDate time.Time) bool {
	return now.After(dueDate)
}

// DaysOverdue counts the started days between the due date and now, 0 when not overdue.
// One second past due counts as one day.
func DaysOverdue(now, dueDate time.Time) int {
	if !IsOverdue(now, dueDate) {
		return 0
	}

	return int(math.Ceil(float64(now.Sub(dueDate)) / float64(day)))
}
