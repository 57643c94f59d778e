package sqlengine

import (
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

// TableNames holds the names of the tables the Store works on.
type TableNames struct {
	Authors  string
	Books    string
	Students string
	Loans    string
	Users    string
}

// DefaultTableNames returns the table names used when WithTableNames is not supplied.
func DefaultTableNames() TableNames {
	return TableNames{
		Authors:  "authors",
		Books:    "books",
		Students: "students",
		Loans:    "loans",
		Users:    "users",
	}
}

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithTableNames overrides the default table names, e.g. to run several stores side by side.
func WithTableNames(tables TableNames) Option {
	return func(s *Store) error {
		for _, name := range []string{tables.Authors, tables.Books, tables.Students, tables.Loans, tables.Users} {
			if name == "" {
				return librarystore.ErrEmptyTableNameSupplied
			}
		}

		s.tables = tables

		return nil
	}
}

// WithDialect selects the SQL dialect for stores built on *sql.DB or *sqlx.DB.
// Supported are DialectPostgres (default) and DialectSQLite.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		switch dialect {
		case DialectPostgres, DialectSQLite:
			s.dialect = dialect
			return nil
		default:
			return librarystore.ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: completed operations with durations (production-safe)
// Warn level: non-critical issues like rollback or cleanup failures
// Error level: failures that cause operation failures.
func WithLogger(logger librarystore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the plain Logger
// and correlates log records with the active trace.
func WithContextualLogger(logger librarystore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, database errors, and concurrency conflicts.
func WithMetrics(collector librarystore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store, which gets one span per store operation.
func WithTracing(collector librarystore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
