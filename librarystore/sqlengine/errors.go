package sqlengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// Postgres SQLSTATE codes the store reacts to.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeUniqueViolation      = "23505"
)

// classifyDriverError maps driver specific errors to store sentinels, nil if there is no mapping.
func classifyDriverError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgresCode(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgresCode(string(pqErr.Code))
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return librarystore.ErrConcurrencyConflict
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
			return librarystore.ErrDuplicateKey
		}
	}

	return nil
}

func classifyPostgresCode(code string) error {
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected:
		return librarystore.ErrConcurrencyConflict
	case pgCodeUniqueViolation:
		return librarystore.ErrDuplicateKey
	default:
		return nil
	}
}

// wrapDriverError joins a technical sentinel with the driver error and, where known, the
// matching outcome sentinel, so callers can use errors.Is on either.
func (s Store) wrapDriverError(sentinel error, err error) error {
	if classified := classifyDriverError(err); classified != nil {
		return errors.Join(sentinel, classified, err)
	}

	return errors.Join(sentinel, err)
}
