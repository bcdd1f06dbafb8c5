package db

import (
	"fmt"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// ResolveConnection parses the run's database URI and attaches the
// authentication settings.
//
// Azure Entra ID authentication is switched on implicitly when a tenant or
// client ID is configured for a network backend, matching how the Azure SDKs
// pick up AZURE_* credentials.
func ResolveConnection(cfg *sqlgrep.ScanConfig) (*sqlgrep.ConnectionConfig, error) {
	conn, err := ParseDatabaseURI(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}

	conn.AuthMethod = cfg.AuthMethod
	conn.AWSRegion = cfg.AWSRegion
	conn.GoogleInstance = cfg.GoogleInstance

	if conn.Backend != sqlgrep.BackendSQLite {
		applyAzureAuth(conn, cfg)
	}

	if conn.Backend == sqlgrep.BackendSQLite && conn.AuthMethod != sqlgrep.AuthMethodStandard {
		return nil, fmt.Errorf("%v authentication does not apply to SQLite: %w", conn.AuthMethod, sqlgrep.ErrInvalidConfig)
	}
	return conn, nil
}

func applyAzureAuth(conn *sqlgrep.ConnectionConfig, cfg *sqlgrep.ScanConfig) {
	if cfg.AzureTenantID == "" && cfg.AzureClientID == "" {
		return
	}
	if conn.AuthMethod == sqlgrep.AuthMethodStandard {
		conn.AuthMethod = sqlgrep.AuthMethodAzureEntraID
	}
	conn.AzureTenantID = cfg.AzureTenantID
	conn.AzureClientID = cfg.AzureClientID
	conn.AzureClientSecret = cfg.AzureClientSecret
}
