package sqlgrep

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ScanConfig contains all parameters needed for one grep run.
type ScanConfig struct {
	// Pattern is the text every cell is matched against. Empty matches everything.
	Pattern string

	// FixedStrings treats Pattern as a literal string instead of a regular expression.
	FixedStrings bool

	// IgnoreCase matches case-insensitively.
	IgnoreCase bool

	// WholeString requires the pattern to cover the entire cell text.
	WholeString bool

	// Tables are scanned in full, in order.
	Tables []string

	// Queries are raw query sources: literal SQL, "-" for stdin or "@path".
	Queries []string

	// IgnoreNonReadOnly drops non read-only statements instead of failing.
	IgnoreNonReadOnly bool

	// DatabaseURI selects the backend and the database to open.
	DatabaseURI string

	// Timeout bounds the entire run. Zero means no limit.
	Timeout time.Duration

	// StrictConversion aborts the scan on the first cell that cannot be
	// turned into text instead of skipping it with a warning.
	StrictConversion bool

	// AuthMethod indicates the authentication mechanism to use for PostgreSQL.
	AuthMethod AuthMethod

	// Cloud authentication parameters
	AWSRegion         string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	GoogleInstance    string
}

// Validate checks if the ScanConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ScanConfig) Validate() error {
	var errs []error

	if c.DatabaseURI == "" {
		errs = append(errs, fmt.Errorf("database URI is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unsupported auth method %v: %w", c.AuthMethod, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ScanStats summarizes a finished scan.
type ScanStats struct {
	Queries  int
	Rows     uint64
	Cells    uint64
	Matches  uint64
	Warnings uint64
}

// Grepper runs a complete scan: connect, plan, resolve, scan.
type Grepper interface {
	Grep(ctx context.Context, config ScanConfig) (ScanStats, error)
}

// Backend identifies the database engine behind a connection URI.
type Backend int

const (
	BackendSQLite Backend = iota
	BackendPostgreSQL
	BackendMySQL
)

// String returns a human-readable string representation of the Backend.
func (b Backend) String() string {
	switch b {
	case BackendSQLite:
		return "SQLite"
	case BackendPostgreSQL:
		return "PostgreSQL"
	case BackendMySQL:
		return "MySQL"
	default:
		return fmt.Sprintf("Unknown(%d)", b)
	}
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Backend Backend

	// Path is the database file for SQLite.
	Path string

	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Cloud authentication parameters
	AWSRegion         string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	GoogleInstance    string

	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid reports whether a is a known authentication method.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the --auth flag value to an AuthMethod.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws":
		return AuthMethodAWSIAM, nil
	case "google":
		return AuthMethodGoogleIAM, nil
	case "azure":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("unknown auth method %q (want standard|aws|azure|google): %w", s, ErrInvalidConfig)
	}
}
