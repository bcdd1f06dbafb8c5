package dialect

import (
	"errors"
	"io"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// MySQL is the dialect of MySQL and MariaDB servers.
type MySQL struct{}

// NewMySQL creates the MySQL dialect.
func NewMySQL() *MySQL {
	return &MySQL{}
}

func (d *MySQL) Name() string { return "mysql" }

// QuoteIdentifier wraps name in backticks, doubling embedded backticks.
func (d *MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Parse splits sql into statements. SELECT, UNION and parenthesized selects
// are read-only unless they lock rows (FOR UPDATE, LOCK IN SHARE MODE).
func (d *MySQL) Parse(sql string) ([]sqlgrep.Statement, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, nil
	}
	tokens := sqlparser.NewTokenizer(strings.NewReader(sql))

	var statements []sqlgrep.Statement
	for {
		stmt, err := sqlparser.ParseNext(tokens)
		if errors.Is(err, io.EOF) {
			return statements, nil
		}
		if err != nil {
			return nil, parseError(d.Name(), err)
		}
		if stmt == nil {
			return statements, nil
		}
		statements = append(statements, sqlgrep.Statement{
			SQL:      sqlparser.String(stmt),
			ReadOnly: isReadOnlyMySQL(stmt),
		})
	}
}

func isReadOnlyMySQL(stmt sqlparser.Statement) bool {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return s.Lock == ""
	case *sqlparser.Union:
		return s.Lock == "" && isReadOnlyMySQL(s.Left) && isReadOnlyMySQL(s.Right)
	case *sqlparser.ParenSelect:
		return isReadOnlyMySQL(s.Select)
	default:
		return false
	}
}

func (d *MySQL) CatalogQuery() string {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' " +
		"ORDER BY table_name"
}
