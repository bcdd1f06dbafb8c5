// Package filesystem provides a small filesystem abstraction used to read
// query source files (@path) and the project configuration file.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
