package db

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/sqlgrep/internal/dialect"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// nativeOIDs are decoded into Go values. Every other type is passed on as
// the server's text rendering, which is exactly what a human would grep for.
var nativeOIDs = map[uint32]bool{
	pgtype.BoolOID:        true,
	pgtype.Int2OID:        true,
	pgtype.Int4OID:        true,
	pgtype.Int8OID:        true,
	pgtype.Float4OID:      true,
	pgtype.Float8OID:      true,
	pgtype.DateOID:        true,
	pgtype.TimeOID:        true,
	pgtype.TimestampOID:   true,
	pgtype.TimestamptzOID: true,
	pgtype.ByteaOID:       true,
	pgtype.UUIDOID:        true,
	pgtype.OIDOID:         true,
}

// PostgresSource streams query results from a pgx pool.
type PostgresSource struct {
	pool    *pgxpool.Pool
	dialect sqlgrep.Dialect
	onClose func()
}

// NewPostgresSource wraps pool. onClose, if set, runs after the pool is closed.
func NewPostgresSource(pool *pgxpool.Pool, onClose func()) *PostgresSource {
	return &PostgresSource{
		pool:    pool,
		dialect: dialect.NewPostgreSQL(),
		onClose: onClose,
	}
}

func (s *PostgresSource) Dialect() sqlgrep.Dialect { return s.dialect }

// Stream runs sql over the simple protocol so that arbitrary statements,
// including those without a describable result, never need a prepare round trip.
func (s *PostgresSource) Stream(ctx context.Context, sql string) (sqlgrep.RowStream, error) {
	rows, err := s.pool.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, err
	}
	return &pgRowStream{rows: rows, typeMap: rows.Conn().TypeMap()}, nil
}

func (s *PostgresSource) Close() error {
	s.pool.Close()
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}

type pgRowStream struct {
	rows    pgx.Rows
	typeMap *pgtype.Map
	columns []sqlgrep.Column
	done    bool
}

func (s *pgRowStream) Next(ctx context.Context) (sqlgrep.Row, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.rows.Next() {
		s.done = true
		s.rows.Close()
		if err := s.rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", sqlgrep.ErrRowFetch, err)
		}
		return nil, io.EOF
	}

	if s.columns == nil {
		s.columns = s.describe()
	}
	return &pgRow{
		columns: s.columns,
		fields:  s.rows.FieldDescriptions(),
		raw:     s.rows.RawValues(),
		typeMap: s.typeMap,
	}, nil
}

func (s *pgRowStream) describe() []sqlgrep.Column {
	fields := s.rows.FieldDescriptions()
	columns := make([]sqlgrep.Column, len(fields))
	for i, fd := range fields {
		columns[i] = sqlgrep.Column{Name: fd.Name}
		if t, ok := s.typeMap.TypeForOID(fd.DataTypeOID); ok {
			columns[i].DatabaseType = t.Name
		}
	}
	return columns
}

func (s *pgRowStream) Close() error {
	s.rows.Close()
	return nil
}

// pgRow borrows the raw buffers of the current row. It is only valid until
// the stream advances.
type pgRow struct {
	columns []sqlgrep.Column
	fields  []pgconn.FieldDescription
	raw     [][]byte
	typeMap *pgtype.Map
}

func (r *pgRow) Columns() []sqlgrep.Column { return r.columns }

func (r *pgRow) Cell(i int) (sqlgrep.Cell, error) {
	cell := sqlgrep.Cell{DatabaseType: r.columns[i].DatabaseType}
	raw := r.raw[i]
	if raw == nil {
		return cell, nil
	}

	fd := r.fields[i]
	if !nativeOIDs[fd.DataTypeOID] {
		cell.Value = string(raw)
		return cell, nil
	}

	t, ok := r.typeMap.TypeForOID(fd.DataTypeOID)
	if !ok {
		cell.Value = string(raw)
		return cell, nil
	}
	value, err := t.Codec.DecodeValue(r.typeMap, fd.DataTypeOID, fd.Format, raw)
	if err != nil {
		return cell, fmt.Errorf("%w: %w", sqlgrep.ErrCellFetch, err)
	}

	if tm, isTime := value.(pgtype.Time); isTime {
		value = timeOfDay(tm)
	}
	cell.Value = value
	return cell, nil
}

// timeOfDay places a time-without-zone on the zero date so it formats as 15:04:05.
func timeOfDay(t pgtype.Time) time.Time {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(t.Microseconds) * time.Microsecond)
}
