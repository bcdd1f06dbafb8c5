package sqlgrep

import "context"

// Column describes one result column in declared order.
type Column struct {
	Name string

	// DatabaseType is the declared type name as reported by the driver
	// (e.g. "INTEGER", "timestamptz", "VARCHAR"). May be empty for expressions.
	DatabaseType string
}

// Cell is one raw, driver-owned value plus its declared type.
// Cells are read once per row and never retained.
type Cell struct {
	Value        any
	DatabaseType string
}

// Row is one delivered result row.
type Row interface {
	// Columns returns the result columns in positional order.
	Columns() []Column

	// Cell decodes the value at position i.
	// An error affects this cell only; other cells of the row stay readable.
	Cell(i int) (Cell, error)
}

// RowStream is a lazy, finite, non-restartable sequence of rows.
//
// Next returns io.EOF once the stream is exhausted. Any other error reports
// a failure of that single item: the stream remains usable and the caller
// may continue to call Next.
type RowStream interface {
	Next(ctx context.Context) (Row, error)
	Close() error
}

// Source is a read-only database handle.
// The caller owns it; the scan engine only borrows it.
type Source interface {
	// Dialect returns the SQL dialect spoken by the database.
	Dialect() Dialect

	// Stream issues sql and returns its rows as a pull-based stream.
	Stream(ctx context.Context, sql string) (RowStream, error)

	// Close releases the underlying connections.
	Close() error
}

// Connector opens a read-only Source.
// Different implementations handle the supported backends and the
// various authentication methods.
type Connector interface {
	Connect(ctx context.Context) (Source, error)
}
