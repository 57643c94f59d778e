package core

import (
	"errors"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Messages of the business rule violations.
const (
	MsgNoCopiesAvailable = "No copies of this book are available."
	MsgDuplicateCheckout = "Student already has this book checked out."
	MsgAlreadyReturned   = "This book has already been returned."
	MsgCopiesOnLoan      = "Total copies cannot be lower than the copies currently on loan."
)

// FromStoreError translates an error of the store into the AppError taxonomy.
// resource and key name the record for NotFound and Conflict messages. Errors that are already
// AppErrors pass through, everything unknown becomes Internal.
func FromStoreError(err error, resource string, key any) error {
	if err == nil {
		return nil
	}

	if _, ok := AsAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, librarystore.ErrRecordNotFound):
		return NotFound(resource, key).WithCause(err)
	case errors.Is(err, librarystore.ErrDuplicateKey):
		return Conflict(resource + " already exists.").WithCause(err)
	case errors.Is(err, librarystore.ErrNoCopiesAvailable):
		return BusinessRule(ReasonNoCopiesAvailable, MsgNoCopiesAvailable).WithCause(err)
	case errors.Is(err, librarystore.ErrDuplicateActiveLoan):
		return BusinessRule(ReasonDuplicateCheckout, MsgDuplicateCheckout).WithCause(err)
	case errors.Is(err, librarystore.ErrLoanAlreadyReturned):
		return BusinessRule(ReasonAlreadyReturned, MsgAlreadyReturned).WithCause(err)
	case errors.Is(err, librarystore.ErrCopiesOnLoan):
		return BusinessRule(ReasonCopiesOnLoan, MsgCopiesOnLoan).WithCause(err)
	default:
		return Internal(err)
	}
}
