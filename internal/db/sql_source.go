package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// SQLSource streams query results from a database/sql handle.
// It serves the SQLite and MySQL backends.
type SQLSource struct {
	db      *sql.DB
	dialect sqlgrep.Dialect
}

// NewSQLSource wraps db. The source owns db and closes it.
func NewSQLSource(db *sql.DB, d sqlgrep.Dialect) *SQLSource {
	return &SQLSource{db: db, dialect: d}
}

func (s *SQLSource) Dialect() sqlgrep.Dialect { return s.dialect }

func (s *SQLSource) Stream(ctx context.Context, query string) (sqlgrep.RowStream, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return nil, err
	}
	columns := make([]sqlgrep.Column, len(types))
	for i, ct := range types {
		columns[i] = sqlgrep.Column{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}

	return &sqlRowStream{rows: rows, columns: columns}, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

type sqlRowStream struct {
	rows    *sql.Rows
	columns []sqlgrep.Column
	done    bool
}

// Next scans every column into an untyped destination so the driver picks
// the Go type. A failed scan costs only that row.
func (s *sqlRowStream) Next(ctx context.Context) (sqlgrep.Row, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.rows.Next() {
		s.done = true
		err := s.rows.Err()
		s.rows.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", sqlgrep.ErrRowFetch, err)
		}
		return nil, io.EOF
	}

	values := make([]any, len(s.columns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("%w: %w", sqlgrep.ErrRowFetch, err)
	}

	return &sqlRow{columns: s.columns, values: values}, nil
}

func (s *sqlRowStream) Close() error {
	return s.rows.Close()
}

type sqlRow struct {
	columns []sqlgrep.Column
	values  []any
}

func (r *sqlRow) Columns() []sqlgrep.Column { return r.columns }

func (r *sqlRow) Cell(i int) (sqlgrep.Cell, error) {
	return sqlgrep.Cell{Value: r.values[i], DatabaseType: r.columns[i].DatabaseType}, nil
}
