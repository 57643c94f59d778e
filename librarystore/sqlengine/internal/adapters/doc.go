// Package adapters provides database adapter implementations for the sql engine.
//
// This package contains internal adapters that wrap the supported database connection types
// (pgxpool.Pool, *sql.DB, *sqlx.DB) behind a common interface, so the store can build its
// queries once and run them against any of them, inside or outside of a transaction.
package adapters
