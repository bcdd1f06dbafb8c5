package sqlgrep

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure taxonomy.
// Planning and connection failures are fatal and bubble up to the CLI,
// scan-time failures are reported as *ScanError and never abort a run.
//
// Example usage:
//
//	err := svc.Grep(ctx, cfg)
//	if errors.Is(err, sqlgrep.ErrReadOnlyViolation) {
//	    // a query source tried to modify the database
//	}
var (
	// ErrPatternCompile indicates the search pattern is not a valid regular expression.
	ErrPatternCompile = errors.New("invalid pattern")

	// ErrReadOnlyViolation indicates a query source contains a statement that is not a pure read.
	ErrReadOnlyViolation = errors.New("only read-only queries are allowed")

	// ErrSQLParse indicates a query source could not be parsed with the dialect grammar.
	ErrSQLParse = errors.New("unable to parse SQL")

	// ErrConnectionFailed indicates the database could not be opened or queried for its catalog.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrRowFetch indicates a single row of a result stream could not be retrieved.
	ErrRowFetch = errors.New("row fetch failed")

	// ErrCellFetch indicates a single cell of a row could not be decoded by the driver.
	ErrCellFetch = errors.New("cell fetch failed")

	// ErrCellConversion indicates a cell value could not be turned into text.
	ErrCellConversion = errors.New("cell conversion failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was used incorrectly.
	ErrUsage = errors.New("usage error")
)

// ScanError carries the position of a recoverable scan-time failure.
// Err wraps one of ErrRowFetch, ErrCellFetch or ErrCellConversion.
type ScanError struct {
	QueryID      string
	RowIndex     uint64
	Column       string
	DatabaseType string
	Err          error
}

// Location renders the position as query_id::row_index[::column].
func (e *ScanError) Location() string {
	if e.Column == "" {
		return fmt.Sprintf("%s::%d", e.QueryID, e.RowIndex)
	}
	return fmt.Sprintf("%s::%d::%s", e.QueryID, e.RowIndex, e.Column)
}

func (e *ScanError) Error() string {
	context := e.Location()
	if e.DatabaseType != "" {
		context += " cell type " + e.DatabaseType
	}
	return fmt.Sprintf("%s (%s)", e.Err, context)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// usagePatterns are the messages cobra produces for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrPatternCompile):
		return ExitPatternError
	case errors.Is(err, ErrReadOnlyViolation):
		return ExitReadOnlyError
	case errors.Is(err, ErrSQLParse):
		return ExitSQLParseError
	case errors.Is(err, ErrCellConversion):
		return ExitConversionError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	}

	errStr := err.Error()
	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
