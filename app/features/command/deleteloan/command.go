package deleteloan

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

const (
	commandType = "DeleteLoan"
)

// Command represents the intent to remove a loan record.
type Command struct {
	LoanID core.LoanID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(loanID core.LoanID) Command {
	return Command{LoanID: loanID}
}
