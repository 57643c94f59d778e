package sqlengine

import (
	"context"
	"strings"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Migrate creates the tables and indexes of the Store if they do not exist yet.
// Natural keys (author name, book title, student name) are unique among rows that are not
// soft-deleted.
func (s Store) Migrate(ctx context.Context) error {
	return s.observe(ctx, operationMigrate, func(ctx context.Context) error {
		statements, err := s.schemaStatements()
		if err != nil {
			return err
		}

		for _, statement := range statements {
			if _, execErr := s.db.Exec(ctx, statement); execErr != nil {
				s.logError(ctx, logMsgDBExecFailed, execErr, logAttrOperation, operationMigrate, logAttrQuery, statement)
				return s.wrapDriverError(librarystore.ErrQueryFailed, execErr)
			}
		}

		return nil
	})
}

type columnTypes struct {
	id        string
	reference string
	boolean   string
	falseVal  string
	timestamp string
	notDel    string
}

func (s Store) columnTypes() (columnTypes, error) {
	switch s.dialect {
	case DialectPostgres:
		return columnTypes{
			id:        "BIGSERIAL PRIMARY KEY",
			reference: "BIGINT",
			boolean:   "BOOLEAN",
			falseVal:  "FALSE",
			timestamp: "TIMESTAMPTZ",
			notDel:    "NOT is_deleted",
		}, nil
	case DialectSQLite:
		return columnTypes{
			id:        "INTEGER PRIMARY KEY AUTOINCREMENT",
			reference: "INTEGER",
			boolean:   "BOOLEAN",
			falseVal:  "0",
			timestamp: "TIMESTAMP",
			notDel:    "is_deleted = 0",
		}, nil
	default:
		return columnTypes{}, librarystore.ErrUnsupportedDialect
	}
}

func (s Store) schemaStatements() ([]string, error) {
	ct, err := s.columnTypes()
	if err != nil {
		return nil, err
	}

	t := s.tables
	r := strings.NewReplacer(
		"{id}", ct.id,
		"{ref}", ct.reference,
		"{bool}", ct.boolean,
		"{false}", ct.falseVal,
		"{ts}", ct.timestamp,
		"{notDeleted}", ct.notDel,
		"{authors}", t.Authors,
		"{books}", t.Books,
		"{students}", t.Students,
		"{loans}", t.Loans,
		"{users}", t.Users,
	)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS {authors} (
			id {id},
			name TEXT NOT NULL,
			is_deleted {bool} NOT NULL DEFAULT {false}
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS {authors}_name_uidx ON {authors} (name) WHERE {notDeleted}`,
		`CREATE TABLE IF NOT EXISTS {books} (
			id {id},
			title TEXT NOT NULL,
			author_id {ref} NOT NULL REFERENCES {authors} (id),
			publisher TEXT NOT NULL DEFAULT '',
			barcode TEXT NOT NULL DEFAULT '',
			isbn TEXT NOT NULL DEFAULT '',
			subject_genre TEXT NOT NULL DEFAULT '',
			publication_date {ts} NULL,
			total_copies INTEGER NOT NULL DEFAULT 1 CHECK (total_copies >= 0),
			available_copies INTEGER NOT NULL DEFAULT 1 CHECK (available_copies >= 0 AND available_copies <= total_copies),
			is_deleted {bool} NOT NULL DEFAULT {false}
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS {books}_title_uidx ON {books} (title) WHERE {notDeleted}`,
		`CREATE INDEX IF NOT EXISTS {books}_author_idx ON {books} (author_id)`,
		`CREATE TABLE IF NOT EXISTS {students} (
			id {id},
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			contact_no TEXT NOT NULL DEFAULT '',
			faculty TEXT NOT NULL DEFAULT '',
			semester TEXT NOT NULL DEFAULT '',
			is_deleted {bool} NOT NULL DEFAULT {false}
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS {students}_name_uidx ON {students} (name) WHERE {notDeleted}`,
		`CREATE TABLE IF NOT EXISTS {loans} (
			id {id},
			book_id {ref} NOT NULL REFERENCES {books} (id),
			student_id {ref} NOT NULL REFERENCES {students} (id),
			issue_date {ts} NOT NULL,
			due_date {ts} NOT NULL,
			return_date {ts} NULL,
			is_returned {bool} NOT NULL DEFAULT {false},
			is_deleted {bool} NOT NULL DEFAULT {false}
		)`,
		`CREATE INDEX IF NOT EXISTS {loans}_book_student_idx ON {loans} (book_id, student_id)`,
		`CREATE INDEX IF NOT EXISTS {loans}_student_idx ON {loans} (student_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS {loans}_active_uidx ON {loans} (book_id, student_id)
			WHERE is_returned = {false} AND {notDeleted}`,
		`CREATE TABLE IF NOT EXISTS {users} (
			id {id},
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at {ts} NOT NULL
		)`,
	}

	for i, statement := range statements {
		statements[i] = r.Replace(statement)
	}

	return statements, nil
}
