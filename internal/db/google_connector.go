package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// GoogleCloudSQLConnector connects to Cloud SQL for PostgreSQL with IAM
// database authentication through the Cloud SQL Go Connector.
// The dialer lives as long as the returned Source and closes with it.
type GoogleCloudSQLConnector struct {
	config   *sqlgrep.ConnectionConfig
	instance string
	logger   sqlgrep.Logger
}

// NewGoogleCloudSQLConnector creates a connector for the instance connection
// name project:region:instance.
func NewGoogleCloudSQLConnector(config *sqlgrep.ConnectionConfig, instance string, logger sqlgrep.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
		logger:   logger,
	}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (sqlgrep.Source, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
	}

	// The dialer handles TLS, hence sslmode=disable on the pgx side.
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable",
		c.instance, c.config.Username, c.config.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	pool, err := openPostgresPool(ctx, poolConfig, c.config, c.logger)
	if err != nil {
		dialer.Close()
		return nil, err
	}

	return NewPostgresSource(pool, func() { dialer.Close() }), nil
}
