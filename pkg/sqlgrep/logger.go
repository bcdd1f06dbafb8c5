package sqlgrep

// Logger provides a pluggable logging interface for sqlgrep operations.
// All output goes to the diagnostic stream, never to the match stream.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information such as executed queries.
	// Only logged when verbosity is raised with -v.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems: skipped rows, cells and catalog entries.
	Warn(format string, args ...interface{})

	// Error logs fatal problems.
	Error(format string, args ...interface{})
}
