package planner

import "github.com/vvka-141/sqlgrep/pkg/sqlgrep"

// SynthesizeSelect returns the "select all columns" statement for table.
// The name is not checked against the database; it is quoted as-is.
func SynthesizeSelect(table string, dialect sqlgrep.Dialect) string {
	return selectAll(dialect.QuoteIdentifier(table))
}

// TableQueryID labels the synthesized scan of table.
func TableQueryID(table string, dialect sqlgrep.Dialect) string {
	return tableLabel(dialect.QuoteIdentifier(table))
}

// CatalogTable is a table reported by the database catalog. Schema is empty
// for tables that resolve without qualification.
type CatalogTable struct {
	Schema string
	Name   string
}

// Quote returns the table reference, quoting schema and name separately.
func (t CatalogTable) Quote(dialect sqlgrep.Dialect) string {
	if t.Schema == "" {
		return dialect.QuoteIdentifier(t.Name)
	}
	return dialect.QuoteIdentifier(t.Schema) + "." + dialect.QuoteIdentifier(t.Name)
}

func selectAll(quoted string) string {
	return "SELECT * FROM " + quoted
}

func tableLabel(quoted string) string {
	return "Table " + quoted
}
