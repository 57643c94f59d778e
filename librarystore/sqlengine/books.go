package sqlengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// InsertBook stores a new book with all of its copies available.
func (s Store) InsertBook(ctx context.Context, book librarystore.Book) (librarystore.Book, error) {
	book.AvailableCopies = book.TotalCopies

	err := s.observe(ctx, operationInsertBook, func(ctx context.Context) error {
		record := bookRecord(book)
		record[colTotalCopies] = book.TotalCopies
		record[colAvailableCopies] = book.AvailableCopies
		record[colIsDeleted] = false

		id, err := s.insertReturningID(ctx, s.db, operationInsertBook, s.tables.Books, record)
		book.ID = id

		return err
	})

	return book, err
}

// UpdateBook overwrites the descriptive fields and the author of an active book and sets its
// total copies. The copies currently on loan stay on loan, so available copies move by the same
// delta as the total. Lowering the total below the copies on loan fails with
// librarystore.ErrCopiesOnLoan and leaves the book untouched.
func (s Store) UpdateBook(ctx context.Context, book librarystore.Book) (librarystore.Book, error) {
	var updated librarystore.Book

	err := s.observe(ctx, operationUpdateBook, func(ctx context.Context) error {
		return s.inTx(ctx, operationUpdateBook, func(tx adapters.DBTx) error {
			update := s.builder().Update(s.tables.Books).Prepared(true).
				Set(bookRecord(book)).
				Where(goqu.C(colID).Eq(book.ID), s.notDeleted())

			rowsAffected, err := s.exec(ctx, tx, operationUpdateBook, update)
			if err != nil {
				return err
			}

			if rowsAffected == 0 {
				return librarystore.ErrRecordNotFound
			}

			if err = s.changeTotalCopies(ctx, tx, book.ID, book.TotalCopies); err != nil {
				return err
			}

			updated, err = s.bookWhere(ctx, tx, operationUpdateBook, goqu.C(colID).Eq(book.ID))

			return err
		})
	})

	return updated, err
}

func (s Store) changeTotalCopies(ctx context.Context, q adapters.Querier, bookID int64, total int) error {
	update := s.builder().Update(s.tables.Books).Prepared(true).
		Set(goqu.Record{
			colTotalCopies:     total,
			colAvailableCopies: goqu.L("available_copies + (? - total_copies)", total),
		}).
		Where(
			goqu.C(colID).Eq(bookID),
			s.notDeleted(),
			goqu.L("total_copies - available_copies <= ?", total),
		)

	rowsAffected, err := s.exec(ctx, q, operationChangeTotalCopies, update)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return librarystore.ErrCopiesOnLoan
	}

	return nil
}

// SoftDeleteBook flags a book as deleted.
func (s Store) SoftDeleteBook(ctx context.Context, id int64) error {
	return s.observe(ctx, operationDeleteBook, func(ctx context.Context) error {
		return s.softDelete(ctx, s.db, operationDeleteBook, s.tables.Books, id)
	})
}

// BookByID returns an active book, librarystore.ErrRecordNotFound if there is none.
func (s Store) BookByID(ctx context.Context, id int64) (librarystore.Book, error) {
	var book librarystore.Book

	err := s.observe(ctx, operationBookByID, func(ctx context.Context) error {
		var err error
		book, err = s.bookWhere(ctx, s.db, operationBookByID, goqu.C(colID).Eq(id))

		return err
	})

	return book, err
}

// BookByTitle returns the active book with exactly this title.
func (s Store) BookByTitle(ctx context.Context, title string) (librarystore.Book, error) {
	var book librarystore.Book

	err := s.observe(ctx, operationBookByTitle, func(ctx context.Context) error {
		var err error
		book, err = s.bookWhere(ctx, s.db, operationBookByTitle, goqu.C(colTitle).Eq(title))

		return err
	})

	return book, err
}

// Books lists all active books ordered by id. A non-zero authorID restricts the list to the
// books of that author.
func (s Store) Books(ctx context.Context, authorID int64) ([]librarystore.Book, error) {
	var books []librarystore.Book

	err := s.observe(ctx, operationBooks, func(ctx context.Context) error {
		query := s.selectBooks().Order(goqu.C(colID).Asc())
		if authorID != 0 {
			query = query.Where(goqu.C(colAuthorID).Eq(authorID))
		}

		rows, err := s.query(ctx, s.db, operationBooks, query)
		if err != nil {
			return err
		}

		books, err = scanAll(ctx, s, rows, scanBook)
		s.recordRecordsRead(ctx, operationBooks, len(books))

		return err
	})

	return books, err
}

func (s Store) bookWhere(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	condition exp.Expression,
) (librarystore.Book, error) {

	rows, err := s.query(ctx, q, operation, s.selectBooks().Where(condition).Limit(1))
	if err != nil {
		return librarystore.Book{}, err
	}

	return scanOne(ctx, s, rows, scanBook)
}

func (s Store) selectBooks() *goqu.SelectDataset {
	return s.from(s.tables.Books).
		Select(
			colID, colTitle, colAuthorID, colPublisher, colBarcode, colISBN, colSubjectGenre,
			colPublicationDate, colTotalCopies, colAvailableCopies, colIsDeleted,
		).
		Where(s.notDeleted())
}

// bookRecord holds the columns a book update may overwrite.
func bookRecord(book librarystore.Book) goqu.Record {
	return goqu.Record{
		colTitle:           book.Title,
		colAuthorID:        book.AuthorID,
		colPublisher:       book.Publisher,
		colBarcode:         book.Barcode,
		colISBN:            book.ISBN,
		colSubjectGenre:    book.SubjectGenre,
		colPublicationDate: nullableTime(book.PublicationDate),
	}
}

func scanBook(rows adapters.DBRows) (librarystore.Book, error) {
	var b librarystore.Book
	var publicationDate sql.NullTime

	err := rows.Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.Publisher, &b.Barcode, &b.ISBN, &b.SubjectGenre,
		&publicationDate, &b.TotalCopies, &b.AvailableCopies, &b.IsDeleted,
	)
	b.PublicationDate = timePtr(publicationDate)

	return b, err
}
