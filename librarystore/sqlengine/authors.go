package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// InsertAuthor stores a new author and returns it with its generated id.
func (s Store) InsertAuthor(ctx context.Context, author librarystore.Author) (librarystore.Author, error) {
	err := s.observe(ctx, operationInsertAuthor, func(ctx context.Context) error {
		id, err := s.insertReturningID(ctx, s.db, operationInsertAuthor, s.tables.Authors, goqu.Record{
			colName:      author.Name,
			colIsDeleted: false,
		})
		author.ID = id

		return err
	})

	return author, err
}

// UpdateAuthor overwrites the mutable fields of an active author.
func (s Store) UpdateAuthor(ctx context.Context, author librarystore.Author) error {
	return s.observe(ctx, operationUpdateAuthor, func(ctx context.Context) error {
		update := s.builder().Update(s.tables.Authors).Prepared(true).
			Set(goqu.Record{colName: author.Name}).
			Where(goqu.C(colID).Eq(author.ID), s.notDeleted())

		rowsAffected, err := s.exec(ctx, s.db, operationUpdateAuthor, update)
		if err != nil {
			return err
		}

		if rowsAffected == 0 {
			return librarystore.ErrRecordNotFound
		}

		return nil
	})
}

// SoftDeleteAuthor flags an author as deleted.
func (s Store) SoftDeleteAuthor(ctx context.Context, id int64) error {
	return s.observe(ctx, operationDeleteAuthor, func(ctx context.Context) error {
		return s.softDelete(ctx, s.db, operationDeleteAuthor, s.tables.Authors, id)
	})
}

// AuthorByID returns an active author, librarystore.ErrRecordNotFound if there is none.
func (s Store) AuthorByID(ctx context.Context, id int64) (librarystore.Author, error) {
	var author librarystore.Author

	err := s.observe(ctx, operationAuthorByID, func(ctx context.Context) error {
		var err error
		author, err = s.authorWhere(ctx, operationAuthorByID, goqu.C(colID).Eq(id))

		return err
	})

	return author, err
}

// AuthorByName returns the active author with exactly this name.
func (s Store) AuthorByName(ctx context.Context, name string) (librarystore.Author, error) {
	var author librarystore.Author

	err := s.observe(ctx, operationAuthorByName, func(ctx context.Context) error {
		var err error
		author, err = s.authorWhere(ctx, operationAuthorByName, goqu.C(colName).Eq(name))

		return err
	})

	return author, err
}

// Authors lists all active authors ordered by id.
func (s Store) Authors(ctx context.Context) ([]librarystore.Author, error) {
	var authors []librarystore.Author

	err := s.observe(ctx, operationAuthors, func(ctx context.Context) error {
		rows, err := s.query(ctx, s.db, operationAuthors, s.selectAuthors().Order(goqu.C(colID).Asc()))
		if err != nil {
			return err
		}

		authors, err = scanAll(ctx, s, rows, scanAuthor)
		s.recordRecordsRead(ctx, operationAuthors, len(authors))

		return err
	})

	return authors, err
}

func (s Store) authorWhere(ctx context.Context, operation string, condition exp.Expression) (librarystore.Author, error) {
	rows, err := s.query(ctx, s.db, operation, s.selectAuthors().Where(condition).Limit(1))
	if err != nil {
		return librarystore.Author{}, err
	}

	return scanOne(ctx, s, rows, scanAuthor)
}

func (s Store) selectAuthors() *goqu.SelectDataset {
	return s.from(s.tables.Authors).
		Select(colID, colName, colIsDeleted).
		Where(s.notDeleted())
}

func scanAuthor(rows adapters.DBRows) (librarystore.Author, error) {
	var a librarystore.Author
	err := rows.Scan(&a.ID, &a.Name, &a.IsDeleted)

	return a, err
}
