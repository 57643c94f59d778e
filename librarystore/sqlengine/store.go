package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const (
	colID              = "id"
	colName            = "name"
	colTitle           = "title"
	colAuthorID        = "author_id"
	colPublisher       = "publisher"
	colBarcode         = "barcode"
	colISBN            = "isbn"
	colSubjectGenre    = "subject_genre"
	colPublicationDate = "publication_date"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colAddress         = "address"
	colContactNo       = "contact_no"
	colFaculty         = "faculty"
	colSemester        = "semester"
	colBookID          = "book_id"
	colStudentID       = "student_id"
	colIssueDate       = "issue_date"
	colDueDate         = "due_date"
	colReturnDate      = "return_date"
	colIsReturned      = "is_returned"
	colIsDeleted       = "is_deleted"
	colUsername        = "username"
	colPasswordHash    = "password_hash"
	colCreatedAt       = "created_at"

	aliasLoan        = "l"
	aliasBook        = "b"
	aliasStudent     = "s"
	aliasBookTitle   = "book_title"
	aliasStudentName = "student_name"

	logMsgBuildQueryFailed  = "failed to build sql query"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgDBExecFailed      = "database statement execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgRowsAffected      = "failed to get rows affected count"
	logMsgBeginTxFailed     = "failed to begin transaction"
	logMsgCommitFailed      = "failed to commit transaction"
	logMsgRollbackFailed    = "failed to roll back transaction"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgOperation         = "store operation: "
	logMsgConcurrency       = "concurrency conflict detected"
	logMsgBookNotRestocked  = "book not restocked, record missing or already at total copies"
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrOperation        = "operation"
	logAttrDurationMS       = "duration_ms"
	logAttrRowsAffected     = "rows_affected"
	logAttrBookID           = "book_id"
	logAttrLoanID           = "loan_id"
	logAttrRecordCount      = "record_count"
	logAttrConsistencyLevel = "consistency_level"
)

// Store persists the library records in a relational database.
type Store struct {
	db               adapters.DBAdapter
	dialect          string
	tables           TableNames
	logger           librarystore.Logger
	contextualLogger librarystore.ContextualLogger
	metricsCollector librarystore.MetricsCollector
	tracingCollector librarystore.TracingCollector
}

// NewStoreFromPGXPool creates a new Postgres Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Postgres Store with a primary and a replica pool.
// Reads run on the replica when the context carries librarystore.WithEventualConsistency.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if primary == nil || replica == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a *sql.DB with optional configuration.
// Use WithDialect(DialectSQLite) when the handle was opened with the sqlite3 driver.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a *sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: DialectPostgres,
		tables:  DefaultTableNames(),
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Dialect returns the SQL dialect the Store builds its queries for.
func (s Store) Dialect() string {
	return s.dialect
}

// Ping checks that the database is reachable.
func (s Store) Ping(ctx context.Context) error {
	return s.observe(ctx, operationPing, func(ctx context.Context) error {
		if err := s.db.Ping(ctx); err != nil {
			return s.wrapDriverError(librarystore.ErrQueryFailed, err)
		}

		return nil
	})
}

// sqlBuilder is implemented by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

func (s Store) from(table string) *goqu.SelectDataset {
	return s.builder().From(table).Prepared(true)
}

func (s Store) notDeleted() exp.Expression {
	return goqu.C(colIsDeleted).IsFalse()
}

// query builds and runs a select statement.
func (s Store) query(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	builder sqlBuilder,
) (adapters.DBRows, error) {

	sqlQuery, args, buildErr := builder.ToSQL()
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrOperation, operation)
		return nil, errors.Join(librarystore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	rows, queryErr := q.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrOperation, operation, logAttrQuery, sqlQuery)
		return nil, s.wrapDriverError(librarystore.ErrQueryFailed, queryErr)
	}

	return rows, nil
}

// exec builds and runs a modifying statement and returns the number of affected rows.
func (s Store) exec(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	builder sqlBuilder,
) (int64, error) {

	result, err := s.execResult(ctx, q, operation, builder)
	if err != nil {
		return 0, err
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffected, rowsAffectedErr, logAttrOperation, operation)
		return 0, errors.Join(librarystore.ErrRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

func (s Store) execResult(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	builder sqlBuilder,
) (adapters.DBResult, error) {

	sqlQuery, args, buildErr := builder.ToSQL()
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr, logAttrOperation, operation)
		return nil, errors.Join(librarystore.ErrBuildingQueryFailed, buildErr)
	}

	start := time.Now()
	result, execErr := q.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrOperation, operation, logAttrQuery, sqlQuery)
		return nil, s.wrapDriverError(librarystore.ErrQueryFailed, execErr)
	}

	return result, nil
}

// insertReturningID inserts one row and returns its generated id.
// Postgres reports it via RETURNING, SQLite via the last insert id of the statement.
func (s Store) insertReturningID(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	table string,
	record goqu.Record,
) (int64, error) {

	insert := s.builder().Insert(table).Rows(record).Prepared(true)

	if s.dialect == DialectPostgres {
		rows, err := s.query(ctx, q, operation, insert.Returning(goqu.C(colID)))
		if err != nil {
			return 0, err
		}

		return scanOne(ctx, s, rows, func(rows adapters.DBRows) (int64, error) {
			var id int64
			err := rows.Scan(&id)
			return id, err
		})
	}

	result, err := s.execResult(ctx, q, operation, insert)
	if err != nil {
		return 0, err
	}

	id, idErr := result.LastInsertID()
	if idErr != nil {
		return 0, errors.Join(librarystore.ErrQueryFailed, idErr)
	}

	return id, nil
}

// inTx runs fn inside a transaction, committing when it returns nil and rolling back otherwise.
func (s Store) inTx(ctx context.Context, operation string, fn func(tx adapters.DBTx) error) error {
	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr, logAttrOperation, operation)
		return s.wrapDriverError(librarystore.ErrTransactionFailed, beginErr)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackFailed, logAttrOperation, operation, logAttrError, rollbackErr.Error())
		}

		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitFailed, commitErr, logAttrOperation, operation)
		return s.wrapDriverError(librarystore.ErrTransactionFailed, commitErr)
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// scanAll reads every row with scan and closes the rows.
func scanAll[T any](
	ctx context.Context,
	s Store,
	rows adapters.DBRows,
	scan func(rows adapters.DBRows) (T, error),
) ([]T, error) {

	defer s.closeRows(ctx, rows)

	result := make([]T, 0)

	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(librarystore.ErrScanningRowFailed, scanErr)
		}

		result = append(result, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, s.wrapDriverError(librarystore.ErrQueryFailed, rowsErr)
	}

	return result, nil
}

// scanOne reads the first row with scan, ErrRecordNotFound when there is none.
func scanOne[T any](
	ctx context.Context,
	s Store,
	rows adapters.DBRows,
	scan func(rows adapters.DBRows) (T, error),
) (T, error) {

	var empty T

	items, err := scanAll(ctx, s, rows, scan)
	if err != nil {
		return empty, err
	}

	if len(items) == 0 {
		return empty, librarystore.ErrRecordNotFound
	}

	return items[0], nil
}

// softDelete flags one row as deleted, ErrRecordNotFound when no active row matches.
func (s Store) softDelete(ctx context.Context, q adapters.Querier, operation string, table string, id int64) error {
	update := s.builder().Update(table).Prepared(true).
		Set(goqu.Record{colIsDeleted: true}).
		Where(goqu.C(colID).Eq(id), s.notDeleted())

	rowsAffected, err := s.exec(ctx, q, operation, update)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return librarystore.ErrRecordNotFound
	}

	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.UTC()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	v := t.Time.UTC()

	return &v
}
