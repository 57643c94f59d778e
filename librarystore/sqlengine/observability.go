package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-management-api/librarystore"
)

const (
	metricOperationDuration    = "librarystore_operation_duration_seconds"
	metricDatabaseErrors       = "librarystore_database_errors_total"
	metricConcurrencyConflicts = "librarystore_concurrency_conflicts_total"
	metricRecordsRead          = "librarystore_records_read"

	spanNamePrefix = "librarystore."

	spanAttrOperation   = "operation"
	spanAttrErrorType   = "error_type"
	spanAttrDurationMS  = "duration_ms"
	spanAttrRecordCount = "record_count"

	statusSuccess  = "success"
	statusRejected = "rejected"
	statusConflict = "conflict"
	statusError    = "error"

	errorTypeQuery       = "query_error"
	errorTypeBuild       = "build_error"
	errorTypeScan        = "scan_error"
	errorTypeTransaction = "transaction_error"
	errorTypeCanceled    = "canceled"
	errorTypeTimeout     = "timeout"
	errorTypeOther       = "other"
)

// Store operation names, used as log, metric, and span attributes.
const (
	operationPing              = "ping"
	operationMigrate           = "migrate"
	operationInsertAuthor      = "insert_author"
	operationUpdateAuthor      = "update_author"
	operationDeleteAuthor      = "delete_author"
	operationAuthorByID        = "author_by_id"
	operationAuthorByName      = "author_by_name"
	operationAuthors           = "authors"
	operationInsertBook        = "insert_book"
	operationUpdateBook        = "update_book"
	operationDeleteBook        = "delete_book"
	operationBookByID          = "book_by_id"
	operationBookByTitle       = "book_by_title"
	operationBooks             = "books"
	operationInsertStudent     = "insert_student"
	operationUpdateStudent     = "update_student"
	operationDeleteStudent     = "delete_student"
	operationStudentByID       = "student_by_id"
	operationStudentByName     = "student_by_name"
	operationStudents          = "students"
	operationCheckoutBook      = "checkout_book"
	operationReturnLoan        = "return_loan"
	operationDeleteLoan        = "delete_loan"
	operationLoanByID          = "loan_by_id"
	operationLoans             = "loans"
	operationHasActiveLoan     = "has_active_loan"
	operationInsertUser        = "insert_user"
	operationUserByUsername    = "user_by_username"
	operationUserByID          = "user_by_id"
	operationReleaseBookCopy   = "release_book_copy"
	operationReserveBookCopy   = "reserve_book_copy"
	operationChangeTotalCopies = "change_total_copies"
)

// observe runs one store operation inside a span and records its duration and outcome.
func (s Store) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := s.startTraceSpan(ctx, operation)
	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)
	status := operationStatus(err)

	s.recordDurationMetricsContext(ctx, duration, operation, status)

	switch status {
	case statusSuccess:
		s.logOperation(ctx, operation, logAttrDurationMS, s.toMilliseconds(duration),
			logAttrConsistencyLevel, librarystore.GetConsistencyLevel(ctx).String())
	case statusConflict:
		s.logInfo(ctx, logMsgConcurrency, logAttrOperation, operation, logAttrError, err.Error())
		s.recordConcurrencyConflictMetrics(ctx, operation)
	case statusError:
		s.recordErrorMetricsContext(ctx, operation, errorType(err))
	}

	s.finishTraceSpan(span, status, duration, err)

	return err
}

// operationStatus classifies an operation result. Expected outcomes like a missing record are
// "rejected", retryable conflicts "conflict", everything else "error".
func operationStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, librarystore.ErrConcurrencyConflict):
		return statusConflict
	case errors.Is(err, librarystore.ErrRecordNotFound),
		errors.Is(err, librarystore.ErrDuplicateKey),
		errors.Is(err, librarystore.ErrNoCopiesAvailable),
		errors.Is(err, librarystore.ErrDuplicateActiveLoan),
		errors.Is(err, librarystore.ErrLoanAlreadyReturned),
		errors.Is(err, librarystore.ErrCopiesOnLoan):
		return statusRejected
	default:
		return statusError
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, librarystore.ErrBuildingQueryFailed):
		return errorTypeBuild
	case errors.Is(err, librarystore.ErrScanningRowFailed):
		return errorTypeScan
	case errors.Is(err, librarystore.ErrTransactionFailed):
		return errorTypeTransaction
	case errors.Is(err, librarystore.ErrQueryFailed), errors.Is(err, librarystore.ErrRowsAffectedFailed):
		return errorTypeQuery
	default:
		return errorTypeOther
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+operation, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
}

// logOperation logs completed operations at info level.
func (s Store) logOperation(ctx context.Context, operation string, args ...any) {
	s.logInfo(ctx, logMsgOperation+operation, args...)
}

func (s Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// logError logs error information at the error level.
func (s Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s Store) recordDurationMetricsContext(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	}
}

// recordRecordsRead records how many rows a list operation returned.
func (s Store) recordRecordsRead(ctx context.Context, operation string, count int) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricRecordsRead, float64(count), labels)
	} else {
		s.metricsCollector.RecordValue(metricRecordsRead, float64(count), labels)
	}
}

func (s Store) recordErrorMetricsContext(ctx context.Context, operation, errType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errType,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

func (s Store) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"conflict_type":   "concurrency",
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}

func (s Store) startTraceSpan(ctx context.Context, operation string) (context.Context, librarystore.SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
		spanAttrOperation: operation,
	})
}

func (s Store) finishTraceSpan(span librarystore.SpanContext, status string, duration time.Duration, err error) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6),
	}

	if status == statusError {
		attrs[spanAttrErrorType] = errorType(err)
	}

	s.tracingCollector.FinishSpan(span, status, attrs)
}
