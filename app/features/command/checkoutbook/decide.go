package checkoutbook

import (
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	resourceBook    = "Book"
	resourceStudent = "Student"
)

// State is the snapshot of everything the checkout rules look at.
type State struct {
	Book          librarystore.Book
	BookFound     bool
	Student       librarystore.Student
	StudentFound  bool
	HasActiveLoan bool
}

// Decide implements the business logic to determine whether a book may be checked out.
// This is a pure function with no side effects.
//
// Business Rules, checked in this order:
//
//	ERROR (Validation): borrow days are negative
//	ERROR (NotFound): the book does not exist or was deleted
//	ERROR (NO_COPIES_AVAILABLE): no copy of the book is available
//	ERROR (NotFound): the student does not exist or was deleted
//	ERROR (DUPLICATE_CHECKOUT): the student already holds an active loan for the book
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateBorrowDays(command.BorrowDays); err != nil {
		return core.RejectedDecision(err)
	}

	if !s.BookFound {
		return core.RejectedDecision(core.NotFound(resourceBook, command.BookID))
	}

	if s.Book.AvailableCopies <= 0 {
		return core.RejectedDecision(core.BusinessRule(core.ReasonNoCopiesAvailable, core.MsgNoCopiesAvailable))
	}

	if !s.StudentFound {
		return core.RejectedDecision(core.NotFound(resourceStudent, command.StudentID))
	}

	if s.HasActiveLoan {
		return core.RejectedDecision(core.BusinessRule(core.ReasonDuplicateCheckout, core.MsgDuplicateCheckout))
	}

	return core.SuccessDecision()
}
