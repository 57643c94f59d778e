package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newRootConfigForTest(t *testing.T) config.AppConfig {
	t.Helper()

	return config.AppConfig{
		DBDriver:    config.DriverSQLite,
		DBDSN:       filepath.Join(t.TempDir(), "library.db"),
		HTTPAddr:    ":0",
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		JWTIssuer:   "libraryapi-test",
		JWTTTL:      time.Hour,
		Environment: "test",
		LogLevel:    "error",
	}
}
