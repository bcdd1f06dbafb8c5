package dialect

import (
	"github.com/jackc/pgx/v5"
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// PostgreSQL is the dialect of PostgreSQL servers.
// Statements are parsed by libpg_query, i.e. the server's own grammar.
type PostgreSQL struct{}

// NewPostgreSQL creates the PostgreSQL dialect.
func NewPostgreSQL() *PostgreSQL {
	return &PostgreSQL{}
}

func (d *PostgreSQL) Name() string { return "postgresql" }

// QuoteIdentifier quotes name the way pgx sanitizes identifiers.
func (d *PostgreSQL) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Parse splits sql into statements. A SELECT is read-only unless it writes
// into a table (SELECT INTO), takes row locks (FOR UPDATE/SHARE) or carries a
// data-modifying CTE.
func (d *PostgreSQL) Parse(sql string) ([]sqlgrep.Statement, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, parseError(d.Name(), err)
	}

	statements := make([]sqlgrep.Statement, 0, len(tree.GetStmts()))
	for _, raw := range tree.GetStmts() {
		text, err := pg_query.Deparse(&pg_query.ParseResult{Stmts: []*pg_query.RawStmt{raw}})
		if err != nil {
			return nil, parseError(d.Name(), err)
		}
		statements = append(statements, sqlgrep.Statement{
			SQL:      text,
			ReadOnly: isReadOnlySelect(raw.GetStmt().GetSelectStmt()),
		})
	}
	return statements, nil
}

func isReadOnlySelect(sel *pg_query.SelectStmt) bool {
	if sel == nil {
		return false
	}
	if sel.GetIntoClause() != nil || len(sel.GetLockingClause()) > 0 {
		return false
	}
	for _, cte := range sel.GetWithClause().GetCtes() {
		if !isReadOnlySelect(cte.GetCommonTableExpr().GetCtequery().GetSelectStmt()) {
			return false
		}
	}
	// UNION / INTERSECT / EXCEPT branches
	if larg := sel.GetLarg(); larg != nil && !isReadOnlySelect(larg) {
		return false
	}
	if rarg := sel.GetRarg(); rarg != nil && !isReadOnlySelect(rarg) {
		return false
	}
	return true
}

// CatalogQuery lists (schema, name) for the base tables of every user schema.
// The schema is NULL for the current schema, whose tables resolve unqualified.
func (d *PostgreSQL) CatalogQuery() string {
	return "SELECT CASE WHEN table_schema = current_schema() THEN NULL ELSE table_schema::text END AS table_schema, table_name " +
		"FROM information_schema.tables " +
		"WHERE table_type = 'BASE TABLE' " +
		"AND table_schema NOT IN ('pg_catalog', 'information_schema') " +
		"AND left(table_schema, 3) <> 'pg_' " +
		"ORDER BY 1 NULLS FIRST, 2"
}
