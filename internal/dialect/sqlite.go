package dialect

import (
	"errors"
	"io"
	"strings"

	rqlitesql "github.com/rqlite/sql"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// SQLite is the dialect of SQLite databases.
type SQLite struct{}

// NewSQLite creates the SQLite dialect.
func NewSQLite() *SQLite {
	return &SQLite{}
}

func (d *SQLite) Name() string { return "sqlite" }

// QuoteIdentifier wraps name in double quotes, doubling embedded quotes.
func (d *SQLite) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Parse splits sql into statements. SELECT, including compound selects and
// WITH ... SELECT, is read-only; everything else is not.
func (d *SQLite) Parse(sql string) ([]sqlgrep.Statement, error) {
	reader := &byteCounter{r: strings.NewReader(sql)}
	parser := rqlitesql.NewParser(reader)

	var statements []sqlgrep.Statement
	start := 0
	for {
		stmt, err := parser.ParseStatement()
		if errors.Is(err, io.EOF) {
			return statements, nil
		}
		if err != nil {
			return nil, parseError(d.Name(), err)
		}

		// The parser stops right after the statement's semicolon or at EOF.
		source := sql[start:reader.n]
		start = reader.n

		_, readOnly := stmt.(*rqlitesql.SelectStatement)
		statements = append(statements, sqlgrep.Statement{
			SQL:      renderSQLite(stmt, source),
			ReadOnly: readOnly,
		})
	}
}

// renderSQLite prints stmt in canonical form. Some valid syntax (LIKE ...
// ESCAPE among it) parses but cannot be printed; those statements keep their
// source text.
func renderSQLite(stmt rqlitesql.Statement, source string) (text string) {
	defer func() {
		if recover() != nil {
			text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(source), ";"))
		}
	}()
	return stmt.String()
}

// byteCounter records how many bytes of the input the parser has consumed.
type byteCounter struct {
	r *strings.Reader
	n int
}

func (c *byteCounter) ReadRune() (rune, int, error) {
	ch, size, err := c.r.ReadRune()
	c.n += size
	return ch, size, err
}

func (d *SQLite) CatalogQuery() string {
	return "SELECT name FROM sqlite_schema WHERE type = 'table'"
}
