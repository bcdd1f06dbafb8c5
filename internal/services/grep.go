package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/vvka-141/sqlgrep/internal/cell"
	"github.com/vvka-141/sqlgrep/internal/db"
	"github.com/vvka-141/sqlgrep/internal/dialect"
	"github.com/vvka-141/sqlgrep/internal/files/filesystem"
	"github.com/vvka-141/sqlgrep/internal/pattern"
	"github.com/vvka-141/sqlgrep/internal/planner"
	"github.com/vvka-141/sqlgrep/internal/scan"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// Labels prefixed to fatal connection-stage errors.
const (
	labelURI        = "Database URI"
	labelConnection = "Database connection"
	labelCatalog    = "fetch tables"
)

// ConnectorFactory creates the Connector for a resolved connection.
type ConnectorFactory func(*sqlgrep.ConnectionConfig, sqlgrep.Logger) (sqlgrep.Connector, error)

// GrepService implements sqlgrep.Grepper.
// Thread-Safety: NOT safe for concurrent Grep() calls when the query sources
// read standard input. Create separate instances otherwise.
type GrepService struct {
	connectorFactory ConnectorFactory
	sink             scan.Sink
	logger           sqlgrep.Logger
	stdin            io.Reader
	fsys             filesystem.FileSystemProvider
}

var _ sqlgrep.Grepper = (*GrepService)(nil)

// NewGrepService creates a GrepService with all dependencies injected.
// Panics on nil dependencies. stdin may be nil when "-" sources are not supported.
func NewGrepService(
	connectorFactory ConnectorFactory,
	sink scan.Sink,
	logger sqlgrep.Logger,
	stdin io.Reader,
	fsys filesystem.FileSystemProvider,
) *GrepService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if sink == nil {
		panic("sink cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsys == nil {
		panic("fsys cannot be nil")
	}

	return &GrepService{
		connectorFactory: connectorFactory,
		sink:             sink,
		logger:           logger,
		stdin:            stdin,
		fsys:             fsys,
	}
}

// Grep plans the run, connects, resolves the whole-database plan through the
// catalog when needed, and scans.
//
// Everything that can fail without a database (pattern, query sources,
// read-only validation) fails before a connection is attempted.
func (s *GrepService) Grep(ctx context.Context, cfg sqlgrep.ScanConfig) (sqlgrep.ScanStats, error) {
	var stats sqlgrep.ScanStats

	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	p, err := pattern.New(cfg.Pattern, patternKind(cfg), pattern.Options{
		CaseInsensitive: cfg.IgnoreCase,
		WholeString:     cfg.WholeString,
	})
	if err != nil {
		return stats, err
	}

	connConfig, err := db.ResolveConnection(&cfg)
	if err != nil {
		return stats, connectionStageError(labelURI, err)
	}
	d, err := dialect.ForBackend(connConfig.Backend)
	if err != nil {
		return stats, connectionStageError(labelURI, err)
	}

	sources, err := planner.LoadQuerySources(cfg.Queries, s.stdin, s.fsys)
	if err != nil {
		return stats, err
	}
	plan, err := planner.Build(cfg.Tables, sources, d, cfg.IgnoreNonReadOnly)
	if err != nil {
		return stats, err
	}

	connector, err := s.connectorFactory(connConfig, s.logger)
	if err != nil {
		return stats, connectionStageError(labelConnection, err)
	}
	source, err := connector.Connect(ctx)
	if err != nil {
		return stats, connectionStageError(labelConnection, err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			s.logger.Verbose("closing database: %v", err)
		}
	}()

	queries := plan.Queries()
	if plan.IsWholeDatabase() {
		queries, err = s.resolveWholeDatabase(ctx, source)
		if err != nil {
			return stats, err
		}
	}

	engine := scan.NewEngine(cell.NewNormalizer(s.logger), s.sink, s.logger,
		scan.WithStrictConversion(cfg.StrictConversion))
	return engine.Scan(ctx, source, queries, p)
}

// resolveWholeDatabase turns the catalog into one table query per table.
// A catalog row that cannot be read, or whose table name is not text, is
// skipped with a warning.
func (s *GrepService) resolveWholeDatabase(ctx context.Context, source sqlgrep.Source) ([]planner.NamedQuery, error) {
	d := source.Dialect()
	catalog := d.CatalogQuery()
	s.logger.Verbose("%s: %s", labelCatalog, catalog)

	stream, err := source.Stream(ctx, catalog)
	if err != nil {
		return nil, connectionStageError(labelCatalog, err)
	}
	defer stream.Close()

	var tables []planner.CatalogTable
	for {
		row, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Warn("%s: skipping catalog row: %v", labelCatalog, err)
			continue
		}

		table, ok := catalogTable(row)
		if !ok {
			s.logger.Warn("%s: skipping catalog row without a text table name", labelCatalog)
			continue
		}
		tables = append(tables, table)
	}

	s.logger.Verbose("%s: found %d tables", labelCatalog, len(tables))
	return planner.BuildCatalog(tables, d).Queries(), nil
}

// catalogTable reads a catalog row of (name) or (schema, name). A NULL schema
// means the table resolves unqualified.
func catalogTable(row sqlgrep.Row) (planner.CatalogTable, bool) {
	var table planner.CatalogTable
	switch len(row.Columns()) {
	case 0:
		return table, false
	case 1:
		name, ok := textCell(row, 0)
		table.Name = name
		return table, ok
	}

	c, err := row.Cell(0)
	if err != nil {
		return table, false
	}
	if c.Value != nil {
		schema, ok := cellText(c)
		if !ok {
			return table, false
		}
		table.Schema = schema
	}

	name, ok := textCell(row, 1)
	table.Name = name
	return table, ok
}

func textCell(row sqlgrep.Row, i int) (string, bool) {
	c, err := row.Cell(i)
	if err != nil {
		return "", false
	}
	return cellText(c)
}

func cellText(c sqlgrep.Cell) (string, bool) {
	switch v := c.Value.(type) {
	case string:
		return v, utf8.ValidString(v)
	case []byte:
		// MySQL returns information_schema names as bytes.
		return string(v), utf8.Valid(v)
	}
	return "", false
}

func patternKind(cfg sqlgrep.ScanConfig) pattern.Kind {
	if cfg.FixedStrings {
		return pattern.KindFixed
	}
	return pattern.KindRegex
}

// connectionStageError labels err and classifies it as a connection failure,
// unless it already carries a configuration or cancellation cause.
func connectionStageError(label string, err error) error {
	switch {
	case errors.Is(err, sqlgrep.ErrInvalidConfig),
		errors.Is(err, sqlgrep.ErrConnectionFailed),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", label, err)
	default:
		return fmt.Errorf("%s: %w: %w", label, sqlgrep.ErrConnectionFailed, err)
	}
}
