package sqlgrep

import "time"

// Exit codes for semantic error classification.
// The low codes follow the usual CLI conventions, the 6x/7x codes follow
// sysexits(3) so that scripts can tell a bad request from a bad database:
//   - 0: Success (recoverable per-cell warnings do not change it)
//   - 1: General error
//   - 2: CLI usage error
//   - 3: Panic
//   - 64+: Planning and connection failures
const (
	ExitSuccess         = 0  // Scan completed, with or without matches
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitPatternError    = 64 // Pattern failed to compile
	ExitReadOnlyError   = 65 // Query source contains a non read-only statement
	ExitSQLParseError   = 66 // Query source is not valid SQL for the dialect
	ExitConversionError = 73 // Cell conversion escalated to a fatal error
	ExitConnectionError = 74 // Connection or catalog fetch failed
	ExitConfigError     = 78 // Invalid configuration
)

const (
	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of connection retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxQueryPreviewLength is the maximum number of characters of a SQL
	// statement shown in diagnostics.
	MaxQueryPreviewLength = 200

	// StdinSource is the raw query source entry meaning "read all of standard input".
	StdinSource = "-"

	// FileSourcePrefix marks a raw query source entry as a file path.
	FileSourcePrefix = "@"

	// UniversalRegex is the regular expression that matches every cell and
	// therefore never gets compiled.
	UniversalRegex = ".*"
)
