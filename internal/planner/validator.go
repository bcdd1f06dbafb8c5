package planner

import (
	"fmt"
	"strings"

	"github.com/vvka-141/sqlgrep/internal/logging"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// ValidateStatements parses sql with the dialect grammar and returns the
// canonical text of every read-only statement in source order.
//
// A parse failure returns an error wrapping sqlgrep.ErrSQLParse. A statement
// that is not read-only is dropped when ignoreNonRead is set, otherwise it
// aborts validation with sqlgrep.ErrReadOnlyViolation. No partial result is
// returned on error.
func ValidateStatements(sql string, dialect sqlgrep.Dialect, ignoreNonRead bool) ([]string, error) {
	statements, err := dialect.Parse(sql)
	if err != nil {
		return nil, err
	}

	queries := make([]string, 0, len(statements))
	for _, stmt := range statements {
		if stmt.ReadOnly {
			queries = append(queries, stmt.SQL)
			continue
		}
		if ignoreNonRead {
			continue
		}
		return nil, fmt.Errorf("%w: %s", sqlgrep.ErrReadOnlyViolation, preview(stmt.SQL))
	}
	return queries, nil
}

func preview(sql string) string {
	return logging.TruncateQuery(strings.Join(strings.Fields(sql), " "), sqlgrep.MaxQueryPreviewLength)
}
