package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// SQLiteDSN builds a go-sqlite3 DSN for a database file. WAL mode and a busy timeout let
// concurrent requests wait for the write lock instead of failing right away, immediate
// transactions take that lock up front.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
}

// SQLiteDB opens and pings a *sql.DB on the go-sqlite3 driver.
func SQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	const defaultMaxOpenConnections = 4

	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(defaultMaxOpenConnections)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
