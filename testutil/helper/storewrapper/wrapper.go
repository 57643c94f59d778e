package storewrapper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine"
)

// Engine type constants.
const (
	typeSQLite  = "sqlite"
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

const envPostgresDSN = "LIBRARY_TEST_POSTGRES_DSN"

// NewStore returns a migrated store, closed and cleaned up when the test ends.
func NewStore(t testing.TB, options ...sqlengine.Option) sqlengine.Store {
	t.Helper()

	ctx := context.Background()
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	var store sqlengine.Store
	var err error

	switch engineTypeFromEnv {
	case typeSQLite, "":
		db, openErr := config.SQLiteDB(ctx, filepath.Join(t.TempDir(), "library.db"))
		require.NoError(t, openErr, "error opening sqlite database in test setup")
		t.Cleanup(func() { _ = db.Close() })

		store, err = sqlengine.NewStoreFromSQLDB(db, append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)...)

	case typePGXPool:
		poolConfig, configErr := config.PostgresPGXPoolConfig(postgresDSN())
		require.NoError(t, configErr)

		pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
		require.NoError(t, poolErr, "error connecting to DB pool in test setup")
		t.Cleanup(pool.Close)

		store, err = sqlengine.NewStoreFromPGXPool(pool, withUniqueTables(options)...)

	case typeSQLDB:
		db, openErr := config.PostgresSQLDB(ctx, postgresDSN())
		require.NoError(t, openErr)
		t.Cleanup(func() { _ = db.Close() })

		store, err = sqlengine.NewStoreFromSQLDB(db, withUniqueTables(options)...)

	case typeSQLX:
		db, openErr := config.PostgresSQLX(ctx, postgresDSN())
		require.NoError(t, openErr)
		t.Cleanup(func() { _ = db.Close() })

		store, err = sqlengine.NewStoreFromSQLX(db, withUniqueTables(options)...)

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}

	require.NoError(t, err, "error creating store in test setup")
	require.NoError(t, store.Migrate(ctx), "error migrating store in test setup")

	return store
}

func postgresDSN() string {
	if dsn := os.Getenv(envPostgresDSN); dsn != "" {
		return dsn
	}

	return config.DefaultPostgresDSN()
}

// withUniqueTables prefixes the table names so parallel test runs on one Postgres database do not
// see each other's rows.
func withUniqueTables(options []sqlengine.Option) []sqlengine.Option {
	prefix := "t" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "_"
	defaults := sqlengine.DefaultTableNames()

	tables := sqlengine.TableNames{
		Authors:  prefix + defaults.Authors,
		Books:    prefix + defaults.Books,
		Students: prefix + defaults.Students,
		Loans:    prefix + defaults.Loans,
		Users:    prefix + defaults.Users,
	}

	return append([]sqlengine.Option{sqlengine.WithTableNames(tables)}, options...)
}
