package sqlgrep

// Statement is one top-level statement extracted from raw SQL text.
type Statement struct {
	// SQL is the canonical re-serialization of the statement.
	SQL string

	// ReadOnly reports whether the statement is a pure query.
	ReadOnly bool
}

// Dialect captures the grammar and identifier-quoting rules of a SQL variant.
type Dialect interface {
	// Name returns a short dialect name for diagnostics.
	Name() string

	// QuoteIdentifier quotes name so it is always read as an identifier.
	QuoteIdentifier(name string) string

	// Parse splits sql into top-level statements in source order.
	// Returns an error wrapping ErrSQLParse when sql is not valid for the dialect.
	Parse(sql string) ([]Statement, error)

	// CatalogQuery returns a query whose first column lists the scannable tables.
	CatalogQuery() string
}
