package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// CheckoutBook opens a loan and takes one copy of its book out of inventory in one transaction.
//
// It fails with librarystore.ErrDuplicateActiveLoan when the student already holds an active loan
// for the book and with librarystore.ErrNoCopiesAvailable when no copy is left. In both cases
// nothing is written.
func (s Store) CheckoutBook(ctx context.Context, loan librarystore.Loan) (librarystore.Loan, error) {
	err := s.observe(ctx, operationCheckoutBook, func(ctx context.Context) error {
		return s.inTx(ctx, operationCheckoutBook, func(tx adapters.DBTx) error {
			// Reserving first locks the book row, so concurrent checkouts of the same book
			// see each other's loans in the count below.
			if err := s.reserveBookCopy(ctx, tx, loan.BookID); err != nil {
				return err
			}

			active, err := s.countActiveLoans(ctx, tx, loan.BookID, loan.StudentID)
			if err != nil {
				return err
			}

			if active > 0 {
				return librarystore.ErrDuplicateActiveLoan
			}

			id, err := s.insertReturningID(ctx, tx, operationCheckoutBook, s.tables.Loans, goqu.Record{
				colBookID:     loan.BookID,
				colStudentID:  loan.StudentID,
				colIssueDate:  loan.IssueDate.UTC(),
				colDueDate:    loan.DueDate.UTC(),
				colReturnDate: nil,
				colIsReturned: false,
				colIsDeleted:  false,
			})
			if errors.Is(err, librarystore.ErrDuplicateKey) {
				return librarystore.ErrDuplicateActiveLoan
			}

			loan.ID = id

			return err
		})
	})

	return loan, err
}

// ReturnLoan closes an active loan at returnedAt and puts its copy back into inventory.
//
// Returning a loan twice fails with librarystore.ErrLoanAlreadyReturned and keeps the first
// return date. A missing or soft-deleted book does not fail the return, restocked then reports
// false.
func (s Store) ReturnLoan(
	ctx context.Context,
	loanID int64,
	returnedAt time.Time,
) (loan librarystore.LoanDetails, restocked bool, err error) {

	err = s.observe(ctx, operationReturnLoan, func(ctx context.Context) error {
		return s.inTx(ctx, operationReturnLoan, func(tx adapters.DBTx) error {
			var txErr error

			loan, txErr = s.loanWhere(ctx, tx, operationReturnLoan, goqu.I(aliasLoan+"."+colID).Eq(loanID))
			if txErr != nil {
				return txErr
			}

			if loan.IsReturned {
				return librarystore.ErrLoanAlreadyReturned
			}

			returnedAt = returnedAt.UTC()
			update := s.builder().Update(s.tables.Loans).Prepared(true).
				Set(goqu.Record{colIsReturned: true, colReturnDate: returnedAt}).
				Where(goqu.C(colID).Eq(loanID), goqu.C(colIsReturned).IsFalse(), s.notDeleted())

			rowsAffected, txErr := s.exec(ctx, tx, operationReturnLoan, update)
			if txErr != nil {
				return txErr
			}

			if rowsAffected == 0 {
				// Lost a race against a concurrent return or delete.
				if _, txErr = s.loanWhere(ctx, tx, operationReturnLoan, goqu.I(aliasLoan+"."+colID).Eq(loanID)); txErr != nil {
					return txErr
				}

				return librarystore.ErrLoanAlreadyReturned
			}

			restocked, txErr = s.releaseBookCopy(ctx, tx, loan.BookID)
			if txErr != nil {
				return txErr
			}

			loan.IsReturned = true
			loan.ReturnDate = &returnedAt

			return nil
		})
	})

	return loan, restocked, err
}

// SoftDeleteLoan flags a loan as deleted. When the loan is still active its copy goes back into
// inventory in the same transaction, released reports whether that happened.
func (s Store) SoftDeleteLoan(ctx context.Context, loanID int64) (released bool, err error) {
	err = s.observe(ctx, operationDeleteLoan, func(ctx context.Context) error {
		return s.inTx(ctx, operationDeleteLoan, func(tx adapters.DBTx) error {
			loan, txErr := s.loanWhere(ctx, tx, operationDeleteLoan, goqu.I(aliasLoan+"."+colID).Eq(loanID))
			if txErr != nil {
				return txErr
			}

			// Only the row this statement flips from active to deleted owns the copy, a
			// concurrent return may have released it already.
			deleteActive := s.builder().Update(s.tables.Loans).Prepared(true).
				Set(goqu.Record{colIsDeleted: true}).
				Where(goqu.C(colID).Eq(loanID), goqu.C(colIsReturned).IsFalse(), s.notDeleted())

			rowsAffected, txErr := s.exec(ctx, tx, operationDeleteLoan, deleteActive)
			if txErr != nil {
				return txErr
			}

			if rowsAffected == 0 {
				return s.softDelete(ctx, tx, operationDeleteLoan, s.tables.Loans, loanID)
			}

			released, txErr = s.releaseBookCopy(ctx, tx, loan.BookID)

			return txErr
		})
	})

	return released, err
}

// LoanByID returns an active (not soft-deleted) loan with its book title and student name.
func (s Store) LoanByID(ctx context.Context, loanID int64) (librarystore.LoanDetails, error) {
	var loan librarystore.LoanDetails

	err := s.observe(ctx, operationLoanByID, func(ctx context.Context) error {
		var err error
		loan, err = s.loanWhere(ctx, s.db, operationLoanByID, goqu.I(aliasLoan+"."+colID).Eq(loanID))

		return err
	})

	return loan, err
}

// Loans lists the loans matching the filter, newest issue date first.
func (s Store) Loans(ctx context.Context, filter librarystore.LoanFilter) ([]librarystore.LoanDetails, error) {
	var loans []librarystore.LoanDetails

	err := s.observe(ctx, operationLoans, func(ctx context.Context) error {
		query := s.selectLoans().Order(
			goqu.I(aliasLoan+"."+colIssueDate).Desc(),
			goqu.I(aliasLoan+"."+colID).Desc(),
		)

		if filter.BookID != 0 {
			query = query.Where(goqu.I(aliasLoan + "." + colBookID).Eq(filter.BookID))
		}

		if filter.StudentID != 0 {
			query = query.Where(goqu.I(aliasLoan + "." + colStudentID).Eq(filter.StudentID))
		}

		if filter.ActiveOnly {
			query = query.Where(goqu.I(aliasLoan + "." + colIsReturned).IsFalse())
		}

		rows, err := s.query(ctx, s.db, operationLoans, query)
		if err != nil {
			return err
		}

		loans, err = scanAll(ctx, s, rows, scanLoanDetails)
		s.recordRecordsRead(ctx, operationLoans, len(loans))

		return err
	})

	return loans, err
}

// HasActiveLoan reports whether the student holds an active loan for the book.
func (s Store) HasActiveLoan(ctx context.Context, bookID int64, studentID int64) (bool, error) {
	var active int64

	err := s.observe(ctx, operationHasActiveLoan, func(ctx context.Context) error {
		var err error
		active, err = s.countActiveLoans(ctx, s.db, bookID, studentID)

		return err
	})

	return active > 0, err
}

func (s Store) countActiveLoans(ctx context.Context, q adapters.Querier, bookID int64, studentID int64) (int64, error) {
	query := s.from(s.tables.Loans).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C(colBookID).Eq(bookID),
			goqu.C(colStudentID).Eq(studentID),
			goqu.C(colIsReturned).IsFalse(),
			s.notDeleted(),
		)

	rows, err := s.query(ctx, q, operationHasActiveLoan, query)
	if err != nil {
		return 0, err
	}

	return scanOne(ctx, s, rows, func(rows adapters.DBRows) (int64, error) {
		var count int64
		err := rows.Scan(&count)

		return count, err
	})
}

// reserveBookCopy takes one copy out of inventory, only if one is available.
func (s Store) reserveBookCopy(ctx context.Context, q adapters.Querier, bookID int64) error {
	update := s.builder().Update(s.tables.Books).Prepared(true).
		Set(goqu.Record{colAvailableCopies: goqu.L("available_copies - 1")}).
		Where(goqu.C(colID).Eq(bookID), s.notDeleted(), goqu.C(colAvailableCopies).Gt(0))

	rowsAffected, err := s.exec(ctx, q, operationReserveBookCopy, update)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return librarystore.ErrNoCopiesAvailable
	}

	return nil
}

// releaseBookCopy puts one copy back into inventory, capped at the total copies.
func (s Store) releaseBookCopy(ctx context.Context, q adapters.Querier, bookID int64) (bool, error) {
	update := s.builder().Update(s.tables.Books).Prepared(true).
		Set(goqu.Record{colAvailableCopies: goqu.L("available_copies + 1")}).
		Where(
			goqu.C(colID).Eq(bookID),
			s.notDeleted(),
			goqu.C(colAvailableCopies).Lt(goqu.C(colTotalCopies)),
		)

	rowsAffected, err := s.exec(ctx, q, operationReleaseBookCopy, update)
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		s.logWarn(ctx, logMsgBookNotRestocked, logAttrBookID, bookID)
		return false, nil
	}

	return true, nil
}

func (s Store) loanWhere(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	condition exp.Expression,
) (librarystore.LoanDetails, error) {

	rows, err := s.query(ctx, q, operation, s.selectLoans().Where(condition).Limit(1))
	if err != nil {
		return librarystore.LoanDetails{}, err
	}

	return scanOne(ctx, s, rows, scanLoanDetails)
}

// selectLoans joins the loans with the title of their book and the name of their student.
// The joins are outer joins so a loan stays visible when its book or student is gone.
func (s Store) selectLoans() *goqu.SelectDataset {
	col := func(alias, column string) exp.IdentifierExpression {
		return goqu.I(alias + "." + column)
	}

	return s.builder().
		From(goqu.T(s.tables.Loans).As(aliasLoan)).
		Prepared(true).
		LeftJoin(
			goqu.T(s.tables.Books).As(aliasBook),
			goqu.On(col(aliasBook, colID).Eq(col(aliasLoan, colBookID))),
		).
		LeftJoin(
			goqu.T(s.tables.Students).As(aliasStudent),
			goqu.On(col(aliasStudent, colID).Eq(col(aliasLoan, colStudentID))),
		).
		Select(
			col(aliasLoan, colID),
			col(aliasLoan, colBookID),
			col(aliasLoan, colStudentID),
			col(aliasLoan, colIssueDate),
			col(aliasLoan, colDueDate),
			col(aliasLoan, colReturnDate),
			col(aliasLoan, colIsReturned),
			col(aliasLoan, colIsDeleted),
			goqu.COALESCE(col(aliasBook, colTitle), goqu.L("''")).As(aliasBookTitle),
			goqu.COALESCE(col(aliasStudent, colName), goqu.L("''")).As(aliasStudentName),
		).
		Where(col(aliasLoan, colIsDeleted).IsFalse())
}

func scanLoanDetails(rows adapters.DBRows) (librarystore.LoanDetails, error) {
	var l librarystore.LoanDetails
	var returnDate sql.NullTime

	err := rows.Scan(
		&l.ID, &l.BookID, &l.StudentID, &l.IssueDate, &l.DueDate, &returnDate,
		&l.IsReturned, &l.IsDeleted, &l.BookTitle, &l.StudentName,
	)
	l.IssueDate = l.IssueDate.UTC()
	l.DueDate = l.DueDate.UTC()
	l.ReturnDate = timePtr(returnDate)

	return l, err
}
