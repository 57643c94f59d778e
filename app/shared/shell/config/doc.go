// Package config provides the runtime configuration of the library service: database handles for
// the supported drivers (pgx pool, database/sql with lib/pq or go-sqlite3, sqlx), the
// OpenTelemetry providers, and the application settings read from the environment.
//
// This package is part of the shell (infrastructure) layer.
package config
