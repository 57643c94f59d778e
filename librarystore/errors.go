package librarystore

import "errors"

// Configuration errors.
var (
	// ErrNilDatabaseConnection is returned when a store is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableNameSupplied is returned when a table name option receives an empty name.
	ErrEmptyTableNameSupplied = errors.New("table name must not be empty")

	// ErrUnsupportedDialect is returned for SQL dialects the store cannot build queries for.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)

// Technical errors, always joined with the underlying driver error.
var (
	ErrBuildingQueryFailed = errors.New("building query failed")
	ErrQueryFailed         = errors.New("query failed")
	ErrScanningRowFailed   = errors.New("scanning db row failed")
	ErrRowsAffectedFailed  = errors.New("reading rows affected failed")
	ErrTransactionFailed   = errors.New("transaction failed")
)

// ErrConcurrencyConflict marks transient conflicts between concurrent writers (serialization
// failures, deadlocks, a locked sqlite database). Operations failing with it can be retried.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// Outcome errors the domain layer maps to its error taxonomy.
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNoCopiesAvailable   = errors.New("no copies available")
	ErrDuplicateActiveLoan = errors.New("student already holds an active loan for this book")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
	ErrCopiesOnLoan        = errors.New("total copies below copies on loan")
)
