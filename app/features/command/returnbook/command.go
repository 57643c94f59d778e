package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return the book of a loan.
type Command struct {
	LoanID     core.LoanID
	ReturnedAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanID, returnedAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ReturnedAt: core.ToTimestamp(returnedAt),
	}
}
