package sqlengine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

func Test_ClassifyDriverError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{"pgx serialization failure", &pgconn.PgError{Code: "40001"}, librarystore.ErrConcurrencyConflict},
		{"pgx deadlock", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}), librarystore.ErrConcurrencyConflict},
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, librarystore.ErrDuplicateKey},
		{"pq unique violation", &pq.Error{Code: "23505"}, librarystore.ErrDuplicateKey},
		{"pq serialization failure", &pq.Error{Code: "40001"}, librarystore.ErrConcurrencyConflict},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, librarystore.ErrConcurrencyConflict},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, librarystore.ErrConcurrencyConflict},
		{
			"sqlite unique constraint",
			sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			librarystore.ErrDuplicateKey,
		},
		{"pgx other code", &pgconn.PgError{Code: "42P01"}, nil},
		{"plain error", errors.New("boom"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyDriverError(tc.err))
		})
	}
}

func Test_WrapDriverError_KeepsAllErrorsInChain(t *testing.T) {
	// arrange
	driverErr := &pgconn.PgError{Code: "23505"}

	// act
	err := Store{}.wrapDriverError(librarystore.ErrQueryFailed, driverErr)

	// assert
	assert.ErrorIs(t, err, librarystore.ErrQueryFailed)
	assert.ErrorIs(t, err, librarystore.ErrDuplicateKey)
	assert.ErrorIs(t, err, driverErr)
}

func Test_OperationStatus(t *testing.T) {
	assert.Equal(t, statusSuccess, operationStatus(nil))
	assert.Equal(t, statusConflict, operationStatus(errors.Join(librarystore.ErrQueryFailed, librarystore.ErrConcurrencyConflict)))
	assert.Equal(t, statusRejected, operationStatus(librarystore.ErrNoCopiesAvailable))
	assert.Equal(t, statusRejected, operationStatus(librarystore.ErrRecordNotFound))
	assert.Equal(t, statusError, operationStatus(librarystore.ErrQueryFailed))
}
