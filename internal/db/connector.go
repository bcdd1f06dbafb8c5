package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/vvka-141/sqlgrep/internal/dialect"
	"github.com/vvka-141/sqlgrep/internal/retry"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns bounds the pool. A scan issues one query at a time,
	// the extra connections only serve the catalog lookup.
	DefaultMaxConns = 2

	DefaultMaxConnIdleTime = 30 * time.Minute

	// DefaultAppName identifies sqlgrep sessions in pg_stat_activity.
	DefaultAppName = "sqlgrep"

	retryLabel = "Database connection"
)

// openFunc opens a Source for one fully resolved configuration.
// Token-based connectors call it with a fresh password per attempt.
type openFunc func(ctx context.Context, config *sqlgrep.ConnectionConfig) (sqlgrep.Source, error)

func configurePool(poolConfig *pgxpool.Config, logger sqlgrep.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime

	params := poolConfig.ConnConfig.RuntimeParams
	params["default_transaction_read_only"] = "on"
	if params["application_name"] == "" {
		params["application_name"] = DefaultAppName
	}

	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Info("%s: %s", notice.Severity, notice.Message)
	}
}

func openPostgresPool(ctx context.Context, poolConfig *pgxpool.Config, config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (*pgxpool.Pool, error) {
	configurePool(poolConfig, logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, config)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, config)
	}
	return pool, nil
}

func postgresOpener(logger sqlgrep.Logger) openFunc {
	return func(ctx context.Context, config *sqlgrep.ConnectionConfig) (sqlgrep.Source, error) {
		poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(config))
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection config: %w", err)
		}
		pool, err := openPostgresPool(ctx, poolConfig, config, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgresSource(pool, nil), nil
	}
}

func openMySQL(ctx context.Context, config *sqlgrep.ConnectionConfig) (sqlgrep.Source, error) {
	connector, err := mysql.NewConnector(BuildMySQLConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to build MySQL connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapConnectionError(err, config)
	}
	return NewSQLSource(db, dialect.NewMySQL()), nil
}

func openerFor(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (openFunc, sqlgrep.ErrorClassifier) {
	if config.Backend == sqlgrep.BackendMySQL {
		return openMySQL, retry.NewMySQLErrorClassifier()
	}
	return postgresOpener(logger), retry.NewPostgreSQLErrorClassifier()
}

// StandardConnector connects to a PostgreSQL or MySQL server with
// username/password authentication, retrying transient failures.
type StandardConnector struct {
	config        *sqlgrep.ConnectionConfig
	open          openFunc
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a StandardConnector for config.Backend.
// Retry behavior uses DefaultRetryMaxAttempts attempts with exponential
// backoff between DefaultRetryInitialDelay and DefaultRetryMaxDelay.
func NewStandardConnector(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) *StandardConnector {
	open, classifier := openerFor(config, logger)
	return &StandardConnector{
		config:        config,
		open:          open,
		retryExecutor: retry.NewExecutor(classifier, retry.DefaultBackoff()).WithLogger(logger, retryLabel),
	}
}

func (c *StandardConnector) Connect(ctx context.Context) (sqlgrep.Source, error) {
	var source sqlgrep.Source
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		var err error
		source, err = c.open(ctx, c.config)
		return err
	})
	if err != nil {
		return nil, err
	}
	return source, nil
}

// SQLiteConnector opens a local database file read-only. There is nothing
// transient about a missing file, so it never retries.
type SQLiteConnector struct {
	path string
}

func NewSQLiteConnector(path string) *SQLiteConnector {
	return &SQLiteConnector{path: path}
}

func (c *SQLiteConnector) Connect(ctx context.Context) (sqlgrep.Source, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("cannot open SQLite database %q: %w", c.path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot open SQLite database %q: is a directory", c.path)
	}

	db, err := sql.Open("sqlite", SQLiteDSN(c.path))
	if err != nil {
		return nil, fmt.Errorf("cannot open SQLite database %q: %w", c.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open SQLite database %q: %w", c.path, err)
	}
	return NewSQLSource(db, dialect.NewSQLite()), nil
}

// NewConnector creates the Connector matching the backend and auth method.
func NewConnector(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (sqlgrep.Connector, error) {
	if config.Backend == sqlgrep.BackendSQLite {
		if config.AuthMethod != sqlgrep.AuthMethodStandard {
			return nil, fmt.Errorf("%v authentication does not apply to SQLite: %w", config.AuthMethod, sqlgrep.ErrInvalidConfig)
		}
		return NewSQLiteConnector(config.Path), nil
	}

	switch config.AuthMethod {
	case sqlgrep.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case sqlgrep.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case sqlgrep.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case sqlgrep.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, sqlgrep.ErrInvalidConfig)
	}
}

// wrapConnectionError adds a one-line hint to common driver failures.
func wrapConnectionError(err error, config *sqlgrep.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf("connection refused to %s (is %v running?): %w", addr, config.Backend, err)
	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf("cannot resolve host %q: %w", config.Host, err)
	case strings.Contains(errStr, "password authentication failed") || strings.Contains(errStr, "access denied"):
		return fmt.Errorf("authentication failed for user %q: %w", config.Username, err)
	case strings.Contains(errStr, "does not exist") || strings.Contains(errStr, "unknown database"):
		return fmt.Errorf("database %q does not exist: %w", config.Database, err)
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf("connection timed out to %s: %w", addr, err)
	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf("too many connections to %s: %w", addr, err)
	default:
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
}

// newAWSConnector creates a token-based connector with the RDS IAM token provider.
func newAWSConnector(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (sqlgrep.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a Cloud SQL IAM connector. PostgreSQL only.
func newGoogleConnector(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (sqlgrep.Connector, error) {
	if config.Backend != sqlgrep.BackendPostgreSQL {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth is only supported for PostgreSQL: %w", sqlgrep.ErrInvalidConfig)
	}
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", sqlgrep.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username in the URI: %w", sqlgrep.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, logger), nil
}

// newAzureConnector uses Service Principal credentials when all three are
// present and the DefaultAzureCredential chain otherwise.
func newAzureConnector(config *sqlgrep.ConnectionConfig, logger sqlgrep.Logger) (sqlgrep.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
