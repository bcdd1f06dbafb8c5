package scan

import (
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/sqlgrep/internal/tui"
)

// MatchRecord is one matching cell.
type MatchRecord struct {
	QueryID  string
	RowIndex uint64
	Column   string
	Value    string
}

// Location renders query_id::row_index::column.
func (r MatchRecord) Location() string {
	return fmt.Sprintf("%s::%d::%s", r.QueryID, r.RowIndex, r.Column)
}

// String renders the output line without the trailing newline.
func (r MatchRecord) String() string {
	return r.Location() + " => " + r.Value
}

// Sink receives match records as soon as they are found.
type Sink interface {
	WriteMatch(record MatchRecord) error
}

// MatchWriter writes one line per match. Lines are never interleaved,
// so a MatchWriter may be shared by concurrent scanners.
type MatchWriter struct {
	mu        sync.Mutex
	w         io.Writer
	highlight tui.Highlighter
}

// NewMatchWriter creates a MatchWriter on w, highlighting with h.
func NewMatchWriter(w io.Writer, h tui.Highlighter) *MatchWriter {
	return &MatchWriter{w: w, highlight: h}
}

// WriteMatch writes `<query_id>::<row_index>::<column> => <value>`.
func (m *MatchWriter) WriteMatch(record MatchRecord) error {
	line := m.highlight.Location(record.Location()) + " => " + m.highlight.Value(record.Value) + "\n"

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := io.WriteString(m.w, line)
	return err
}
