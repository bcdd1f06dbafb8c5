package services

import (
	"context"
	"io"
	"testing"

	"github.com/vvka-141/sqlgrep/internal/dialect"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// fakeRow is a row of plain values with a shared column list.
type fakeRow struct {
	columns []sqlgrep.Column
	values  []any
}

func (r *fakeRow) Columns() []sqlgrep.Column { return r.columns }

func (r *fakeRow) Cell(i int) (sqlgrep.Cell, error) {
	return sqlgrep.Cell{Value: r.values[i], DatabaseType: r.columns[i].DatabaseType}, nil
}

type fakeStream struct {
	items []fakeItem
	pos   int
}

type fakeItem struct {
	row sqlgrep.Row
	err error
}

func (s *fakeStream) Next(context.Context) (sqlgrep.Row, error) {
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item.row, item.err
}

func (s *fakeStream) Close() error { return nil }

// fakeSource answers each SQL text with a canned stream.
type fakeSource struct {
	results map[string][]fakeItem
	errs    map[string]error
	issued  []string
	closed  bool
}

func (s *fakeSource) Dialect() sqlgrep.Dialect { return dialect.NewSQLite() }

func (s *fakeSource) Stream(_ context.Context, sql string) (sqlgrep.RowStream, error) {
	s.issued = append(s.issued, sql)
	if err := s.errs[sql]; err != nil {
		return nil, err
	}
	return &fakeStream{items: s.results[sql]}, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeConnector struct {
	source sqlgrep.Source
	err    error
}

func (c *fakeConnector) Connect(context.Context) (sqlgrep.Source, error) {
	return c.source, c.err
}

func factoryFor(connector sqlgrep.Connector) ConnectorFactory {
	return func(*sqlgrep.ConnectionConfig, sqlgrep.Logger) (sqlgrep.Connector, error) {
		return connector, nil
	}
}

// unreachableFactory fails the test if the service tries to connect.
func unreachableFactory(t *testing.T) ConnectorFactory {
	return func(*sqlgrep.ConnectionConfig, sqlgrep.Logger) (sqlgrep.Connector, error) {
		t.Fatal("connector must not be created")
		return nil, nil
	}
}

func textRow(name string) fakeItem {
	return fakeItem{row: &fakeRow{
		columns: []sqlgrep.Column{{Name: "name", DatabaseType: "TEXT"}},
		values:  []any{name},
	}}
}
