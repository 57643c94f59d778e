// Package storewrapper creates migrated sqlengine stores for tests.
//
// By default every store lives in its own SQLite database file inside t.TempDir(), so tests need
// no external services. Setting ADAPTER_TYPE to pgxpool, sqldb, or sqlx runs the same tests
// against PostgreSQL (LIBRARY_TEST_POSTGRES_DSN), each store on its own set of tables.
package storewrapper
