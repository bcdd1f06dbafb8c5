package db

import (
	"context"
	"time"
)

// TokenProvider abstracts cloud token acquisition for database authentication.
type TokenProvider interface {
	// GetToken returns a token to use as the database password and its expiry.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. Must not include secrets.
	String() string
}

// AzureDatabaseScope is the OAuth scope Entra ID issues tokens for when the
// target is Azure Database for PostgreSQL or MySQL.
const AzureDatabaseScope = "https://ossrdbms-aad.database.windows.net/.default"
