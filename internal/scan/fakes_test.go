package scan

import (
	"context"
	"errors"
	"io"

	"github.com/vvka-141/sqlgrep/internal/dialect"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// fakeItem is one stream item: either a row or a row fetch failure.
type fakeItem struct {
	cells []any
	err   error
	// cellErrs fails Cell(i) for the listed positions.
	cellErrs map[int]error
}

type fakeRow struct {
	columns []sqlgrep.Column
	item    fakeItem
}

func (r *fakeRow) Columns() []sqlgrep.Column { return r.columns }

func (r *fakeRow) Cell(i int) (sqlgrep.Cell, error) {
	if err, ok := r.item.cellErrs[i]; ok {
		return sqlgrep.Cell{}, err
	}
	return sqlgrep.Cell{Value: r.item.cells[i], DatabaseType: r.columns[i].DatabaseType}, nil
}

type fakeStream struct {
	columns []sqlgrep.Column
	items   []fakeItem
	pos     int
	closed  bool
}

func (s *fakeStream) Next(ctx context.Context) (sqlgrep.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	if item.err != nil {
		return nil, item.err
	}
	return &fakeRow{columns: s.columns, item: item}, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeResult struct {
	columns []sqlgrep.Column
	items   []fakeItem
	openErr error
}

// fakeSource serves canned results keyed by SQL text.
type fakeSource struct {
	results map[string]fakeResult
	opened  []string
	streams []*fakeStream
}

func (s *fakeSource) Dialect() sqlgrep.Dialect { return dialect.NewSQLite() }

func (s *fakeSource) Stream(ctx context.Context, sql string) (sqlgrep.RowStream, error) {
	s.opened = append(s.opened, sql)
	res, ok := s.results[sql]
	if !ok {
		return nil, errors.New("no such table")
	}
	if res.openErr != nil {
		return nil, res.openErr
	}
	stream := &fakeStream{columns: res.columns, items: res.items}
	s.streams = append(s.streams, stream)
	return stream, nil
}

func (s *fakeSource) Close() error { return nil }

type recordingSink struct {
	records []MatchRecord
	err     error
}

func (s *recordingSink) WriteMatch(r MatchRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, r)
	return nil
}

func (s *recordingSink) lines() []string {
	out := make([]string, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.String())
	}
	return out
}
