// Package logging provides concrete implementations of the sqlgrep.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zap console encoder on stderr, level chosen from -q/-v counts
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
// Match output never goes through a logger; only diagnostics do.
package logging
