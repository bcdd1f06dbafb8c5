// Package planner turns table names and raw SQL sources into a vetted,
// ordered list of read-only queries.
//
// Planning is pure: no database is touched. Any statement that is not a
// plain query aborts planning (fail closed) unless the caller asked for such
// statements to be dropped. When nothing is requested the planner returns
// the whole-database sentinel and the caller discovers the table catalog.
//
// # Example Usage
//
//	sources, err := planner.LoadQuerySources(cfg.Queries, os.Stdin, fsys)
//	plan, err := planner.Build(cfg.Tables, sources, dialect, cfg.IgnoreNonReadOnly)
//	if plan.IsWholeDatabase() {
//	    // list tables, then Build(tables, nil, dialect, false)
//	}
package planner
