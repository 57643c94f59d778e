package checkoutbook

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	commandType = "CheckoutBook"
)

// Command represents the intent to lend one copy of a book to a student.
type Command struct {
	BookID     core.BookID
	StudentID  core.StudentID
	BorrowDays int
	IssuedAt   time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. A borrowDays of 0 means the default loan period.
func BuildCommand(bookID core.BookID, studentID core.StudentID, borrowDays int, issuedAt time.Time) Command {
	return Command{
		BookID:     bookID,
		StudentID:  studentID,
		BorrowDays: borrowDays,
		IssuedAt:   core.ToTimestamp(issuedAt),
	}
}

// DueDate is the date the loan opened by this command must be returned.
func (c Command) DueDate() time.Time {
	return core.DueDate(c.IssuedAt, core.BorrowDaysOrDefault(c.BorrowDays))
}
