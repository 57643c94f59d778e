// Package sqlengine provides the relational implementation of the library store.
//
// The Store keeps authors, books, students, loans, and users in five tables and works on
// PostgreSQL (through pgx, database/sql with lib/pq, or sqlx) and on SQLite (database/sql with
// go-sqlite3). Queries are built with goqu for the configured dialect and executed as prepared
// statements.
//
// Inventory changes are written with conditional updates so that the available copies of a book
// can never drop below zero or exceed the total copies, even when requests race:
//
//	UPDATE books SET available_copies = available_copies - 1
//	WHERE id = $1 AND is_deleted IS FALSE AND available_copies > 0
//
// Zero affected rows are reported as librarystore.ErrNoCopiesAvailable. Checkout, return, and
// the administrative loan delete run inside a single transaction each.
//
// Serialization failures and deadlocks (Postgres) or a busy database (SQLite) are reported as
// librarystore.ErrConcurrencyConflict so callers can retry.
package sqlengine
