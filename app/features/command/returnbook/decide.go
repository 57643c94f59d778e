package returnbook

import (
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const resourceLoan = "Loan"

// State is the loan as loaded before the return.
type State struct {
	Loan      librarystore.LoanDetails
	LoanFound bool
}

// Decide implements the business logic to determine whether a loan can be returned.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: an active loan
//	WHEN: ReturnBook command is received
//	THEN: the loan is closed and the days overdue are reported
//	ERROR (NotFound): the loan does not exist or was deleted
//	ERROR (ALREADY_RETURNED): the loan was returned before
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanFound {
		return core.RejectedDecision(core.NotFound(resourceLoan, command.LoanID))
	}

	if s.Loan.IsReturned {
		return core.RejectedDecision(core.BusinessRule(core.ReasonAlreadyReturned, core.MsgAlreadyReturned))
	}

	return core.SuccessDecision()
}

// DaysOverdue is what the return reports, computed against the due date before the loan is closed.
func DaysOverdue(s State, command Command) int {
	return core.DaysOverdue(command.ReturnedAt, s.Loan.DueDate)
}
