package planner

import (
	"fmt"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// NamedQuery is one query of a plan.
type NamedQuery struct {
	// ID is `Table <quoted-name>` or `Query #<n>`.
	ID  string
	SQL string
}

// Plan is either the whole-database sentinel or a non-empty query list.
// The zero value is the whole-database sentinel.
type Plan struct {
	queries []NamedQuery
}

// WholeDatabase returns the sentinel plan meaning "scan every table".
func WholeDatabase() Plan {
	return Plan{}
}

// IsWholeDatabase reports whether the plan still needs catalog discovery.
func (p Plan) IsWholeDatabase() bool {
	return len(p.queries) == 0
}

// Queries returns the planned queries in execution order.
// It returns nil for the whole-database sentinel.
func (p Plan) Queries() []NamedQuery {
	if len(p.queries) == 0 {
		return nil
	}
	out := make([]NamedQuery, len(p.queries))
	copy(out, p.queries)
	return out
}

// Build plans tables first, then the statements of every raw SQL source.
//
// Statements are numbered `Query #1`, `Query #2`, ... with one counter shared
// by all sources of this call, so numbering is global rather than per source.
// Only accepted statements consume a number. An empty result is the
// whole-database sentinel.
func Build(tables, sources []string, dialect sqlgrep.Dialect, ignoreNonRead bool) (Plan, error) {
	queries := make([]NamedQuery, 0, len(tables))
	for _, table := range tables {
		queries = append(queries, NamedQuery{
			ID:  TableQueryID(table, dialect),
			SQL: SynthesizeSelect(table, dialect),
		})
	}

	next := 1
	for _, source := range sources {
		statements, err := ValidateStatements(source, dialect, ignoreNonRead)
		if err != nil {
			return Plan{}, err
		}
		for _, stmt := range statements {
			queries = append(queries, NamedQuery{ID: queryID(next), SQL: stmt})
			next++
		}
	}

	return Plan{queries: queries}, nil
}

// BuildCatalog plans one table query per catalog entry, in catalog order.
// An empty catalog yields the whole-database sentinel.
func BuildCatalog(tables []CatalogTable, dialect sqlgrep.Dialect) Plan {
	queries := make([]NamedQuery, 0, len(tables))
	for _, table := range tables {
		quoted := table.Quote(dialect)
		queries = append(queries, NamedQuery{ID: tableLabel(quoted), SQL: selectAll(quoted)})
	}
	return Plan{queries: queries}
}

func queryID(n int) string {
	return fmt.Sprintf("Query #%d", n)
}
