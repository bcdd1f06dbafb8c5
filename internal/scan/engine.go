package scan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/sqlgrep/internal/cell"
	"github.com/vvka-141/sqlgrep/internal/pattern"
	"github.com/vvka-141/sqlgrep/internal/planner"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// Engine executes planned queries one after another on a single worker.
type Engine struct {
	normalizer *cell.Normalizer
	sink       Sink
	logger     sqlgrep.Logger
	strict     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictConversion makes a cell conversion failure abort the scan
// instead of being logged and skipped.
func WithStrictConversion(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// NewEngine creates a scan engine. Panics if any dependency is nil.
func NewEngine(normalizer *cell.Normalizer, sink Sink, logger sqlgrep.Logger, opts ...Option) *Engine {
	if normalizer == nil {
		panic("normalizer cannot be nil")
	}
	if sink == nil {
		panic("sink cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	e := &Engine{normalizer: normalizer, sink: sink, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan runs queries in order against source. The source is borrowed and
// not closed. Per-row and per-cell failures are logged and counted in
// ScanStats.Warnings. The returned error is non-nil only for context
// cancellation, a failing sink, or an escalated conversion failure.
func (e *Engine) Scan(ctx context.Context, source sqlgrep.Source, queries []planner.NamedQuery, p pattern.Pattern) (sqlgrep.ScanStats, error) {
	var stats sqlgrep.ScanStats

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Queries++
		e.logger.Verbose("%s: %s", q.ID, q.SQL)

		stream, err := source.Stream(ctx, q.SQL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			stats.Warnings++
			e.logger.Warn("%s (%s)", err, q.ID)
			continue
		}

		err = e.scanStream(ctx, q.ID, stream, p, &stats)
		if closeErr := stream.Close(); closeErr != nil {
			e.logger.Verbose("%s: closing result stream: %v", q.ID, closeErr)
		}
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (e *Engine) scanStream(ctx context.Context, queryID string, stream sqlgrep.RowStream, p pattern.Pattern, stats *sqlgrep.ScanStats) error {
	// The index advances once per stream item, whether or not it could be fetched.
	for rowIndex := uint64(0); ; rowIndex++ {
		row, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e.warn(stats, &sqlgrep.ScanError{
				QueryID:  queryID,
				RowIndex: rowIndex,
				Err:      ensureKind(err, sqlgrep.ErrRowFetch),
			})
			continue
		}

		stats.Rows++
		if err := e.scanRow(queryID, rowIndex, row, p, stats); err != nil {
			return err
		}
	}
}

func (e *Engine) scanRow(queryID string, rowIndex uint64, row sqlgrep.Row, p pattern.Pattern, stats *sqlgrep.ScanStats) error {
	for i, col := range row.Columns() {
		c, err := row.Cell(i)
		if err != nil {
			e.warn(stats, &sqlgrep.ScanError{
				QueryID:  queryID,
				RowIndex: rowIndex,
				Column:   col.Name,
				Err:      ensureKind(err, sqlgrep.ErrCellFetch),
			})
			continue
		}
		stats.Cells++

		text, ok, err := e.normalizer.Normalize(c)
		if err != nil {
			scanErr := &sqlgrep.ScanError{
				QueryID:      queryID,
				RowIndex:     rowIndex,
				Column:       col.Name,
				DatabaseType: declaredType(col, c),
				Err:          ensureKind(err, sqlgrep.ErrCellConversion),
			}
			if e.strict {
				return scanErr
			}
			e.warn(stats, scanErr)
			continue
		}
		if !ok || !p.Match(text) {
			continue
		}

		record := MatchRecord{QueryID: queryID, RowIndex: rowIndex, Column: col.Name, Value: text}
		if err := e.sink.WriteMatch(record); err != nil {
			return fmt.Errorf("writing match %s: %w", record.Location(), err)
		}
		stats.Matches++
	}
	return nil
}

func (e *Engine) warn(stats *sqlgrep.ScanStats, err *sqlgrep.ScanError) {
	stats.Warnings++
	e.logger.Warn("%s", err)
}

func declaredType(col sqlgrep.Column, c sqlgrep.Cell) string {
	if c.DatabaseType != "" {
		return c.DatabaseType
	}
	return col.DatabaseType
}

// ensureKind wraps err with sentinel unless it already carries it.
func ensureKind(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
