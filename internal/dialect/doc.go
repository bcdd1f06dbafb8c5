// Package dialect implements sqlgrep.Dialect for the supported backends.
//
// Each dialect parses raw SQL with a grammar-aware parser for its engine,
// splits it into top-level statements, classifies every statement as a pure
// read or not, and re-serializes it canonically:
//
//   - SQLite:     github.com/rqlite/sql
//   - PostgreSQL: github.com/pganalyze/pg_query_go (the server's own parser)
//   - MySQL:      github.com/xwb1989/sqlparser
//
// Classification fails closed: anything the parser does not positively
// recognize as a plain query is reported as not read-only.
package dialect

import (
	"fmt"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// ForBackend returns the dialect spoken by backend.
func ForBackend(backend sqlgrep.Backend) (sqlgrep.Dialect, error) {
	switch backend {
	case sqlgrep.BackendSQLite:
		return NewSQLite(), nil
	case sqlgrep.BackendPostgreSQL:
		return NewPostgreSQL(), nil
	case sqlgrep.BackendMySQL:
		return NewMySQL(), nil
	default:
		return nil, fmt.Errorf("no dialect for backend %v: %w", backend, sqlgrep.ErrInvalidConfig)
	}
}

func parseError(dialect string, err error) error {
	return fmt.Errorf("%w (%s): %v", sqlgrep.ErrSQLParse, dialect, err)
}
