package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
)

// Database drivers the service can run on.
const (
	DriverPGX    = "pgx"
	DriverSQLDB  = "sqldb"
	DriverSQLX   = "sqlx"
	DriverSQLite = "sqlite"
)

// EnvironmentDevelopment enables internal error details in API responses.
const EnvironmentDevelopment = "development"

const (
	envDBDriver     = "LIBRARY_DB_DRIVER"
	envDBDSN        = "LIBRARY_DB_DSN"
	envDBReplicaDSN = "LIBRARY_DB_REPLICA_DSN"
	envHTTPAddr     = "LIBRARY_HTTP_ADDR"
	envJWTSecret    = "LIBRARY_JWT_SECRET"
	envJWTIssuer    = "LIBRARY_JWT_ISSUER"
	envJWTTTL       = "LIBRARY_JWT_TTL"
	envEnvironment  = "LIBRARY_ENV"
	envLogLevel     = "LIBRARY_LOG_LEVEL"
	envOTLPEndpoint = "LIBRARY_OTLP_ENDPOINT"
	envCORSOrigin   = "LIBRARY_CORS_ORIGIN"

	minJWTSecretLength = 32
)

// ErrInvalidConfig is returned by AppConfig.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig holds the settings of the libraryapi service.
type AppConfig struct {
	DBDriver     string
	DBDSN        string
	DBReplicaDSN string
	HTTPAddr     string
	JWTSecret    string
	JWTIssuer    string
	JWTTTL       time.Duration
	Environment  string
	LogLevel     string
	OTLPEndpoint string
	CORSOrigin   string
}

// AppConfigFromEnv reads the settings from LIBRARY_* environment variables, falling back to
// defaults suitable for local development.
func AppConfigFromEnv() AppConfig {
	ttl, err := time.ParseDuration(envOr(envJWTTTL, "1h"))
	if err != nil {
		ttl = time.Hour
	}

	return AppConfig{
		DBDriver:     envOr(envDBDriver, DriverPGX),
		DBDSN:        os.Getenv(envDBDSN),
		DBReplicaDSN: os.Getenv(envDBReplicaDSN),
		HTTPAddr:     envOr(envHTTPAddr, ":8080"),
		JWTSecret:    os.Getenv(envJWTSecret),
		JWTIssuer:    envOr(envJWTIssuer, "library-management-api"),
		JWTTTL:       ttl,
		Environment:  envOr(envEnvironment, "production"),
		LogLevel:     envOr(envLogLevel, "info"),
		OTLPEndpoint: os.Getenv(envOTLPEndpoint),
		CORSOrigin:   envOr(envCORSOrigin, "http://localhost:5173"),
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c AppConfig) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// DSN returns the configured DSN or the driver's default.
func (c AppConfig) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	if c.DBDriver == DriverSQLite {
		return DefaultSQLitePath()
	}

	return DefaultPostgresDSN()
}

// Validate checks the settings needed to serve requests.
func (c AppConfig) Validate() error {
	if !slices.Contains([]string{DriverPGX, DriverSQLDB, DriverSQLX, DriverSQLite}, c.DBDriver) {
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.DBDriver)
	}

	if c.DBReplicaDSN != "" && c.DBDriver != DriverPGX {
		return fmt.Errorf("%w: a replica is only supported with the %s driver", ErrInvalidConfig, DriverPGX)
	}

	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("%w: %s must be at least %d characters", ErrInvalidConfig, envJWTSecret, minJWTSecretLength)
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, envJWTTTL)
	}

	return nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
