package db

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sqlgrep/internal/cell"
	"github.com/vvka-141/sqlgrep/internal/logging"
	testhelpers "github.com/vvka-141/sqlgrep/internal/testing"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

var (
	_ sqlgrep.Source = (*SQLSource)(nil)
	_ sqlgrep.Source = (*PostgresSource)(nil)
)

func drain(t *testing.T, stream sqlgrep.RowStream) ([][]sqlgrep.Cell, []error) {
	t.Helper()

	var rows [][]sqlgrep.Cell
	var errs []error
	ctx := context.Background()
	for {
		row, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			return rows, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cells := make([]sqlgrep.Cell, len(row.Columns()))
		for i := range cells {
			cell, err := row.Cell(i)
			require.NoError(t, err)
			cells[i] = cell
		}
		rows = append(rows, cells)
	}
}

func openSQLite(t *testing.T, statements ...string) sqlgrep.Source {
	t.Helper()

	path := testhelpers.NewSQLiteDatabase(t, statements...)
	source, err := NewSQLiteConnector(path).Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { source.Close() })
	return source
}

func TestSQLiteConnector_StreamsRows(t *testing.T) {
	source := openSQLite(t,
		`CREATE TABLE users (id INTEGER, name TEXT, avatar BLOB, score REAL)`,
		`INSERT INTO users VALUES (1, 'Alice', x'00ff', 1.5), (2, 'Bob', NULL, NULL)`,
	)
	assert.Equal(t, "sqlite", source.Dialect().Name())

	stream, err := source.Stream(context.Background(), "SELECT * FROM users ORDER BY id")
	require.NoError(t, err)
	defer stream.Close()

	rows, errs := drain(t, stream)
	require.Empty(t, errs)
	require.Len(t, rows, 2)

	assert.Equal(t, sqlgrep.Cell{Value: int64(1), DatabaseType: "INTEGER"}, rows[0][0])
	assert.Equal(t, sqlgrep.Cell{Value: "Alice", DatabaseType: "TEXT"}, rows[0][1])
	assert.Equal(t, []byte{0x00, 0xff}, rows[0][2].Value)
	assert.Equal(t, "BLOB", rows[0][2].DatabaseType)
	assert.Equal(t, 1.5, rows[0][3].Value)
	assert.Nil(t, rows[1][2].Value)
}

func TestSQLiteConnector_ColumnsInDeclaredOrder(t *testing.T) {
	source := openSQLite(t, `CREATE TABLE t (b TEXT, a TEXT)`, `INSERT INTO t VALUES ('1', '2')`)

	stream, err := source.Stream(context.Background(), "SELECT * FROM t")
	require.NoError(t, err)
	defer stream.Close()

	row, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []sqlgrep.Column{{Name: "b", DatabaseType: "TEXT"}, {Name: "a", DatabaseType: "TEXT"}}, row.Columns())

	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF, "exhausted stream stays exhausted")
}

func TestSQLiteConnector_CatalogQuery(t *testing.T) {
	source := openSQLite(t, `CREATE TABLE users (id INTEGER)`, `CREATE TABLE orders (id INTEGER)`, `CREATE VIEW v AS SELECT 1`)

	stream, err := source.Stream(context.Background(), source.Dialect().CatalogQuery())
	require.NoError(t, err)
	defer stream.Close()

	rows, errs := drain(t, stream)
	require.Empty(t, errs)

	var names []string
	for _, row := range rows {
		names = append(names, row[0].Value.(string))
	}
	assert.ElementsMatch(t, []string{"users", "orders"}, names)
}

func TestSQLiteConnector_IsReadOnly(t *testing.T) {
	source := openSQLite(t, `CREATE TABLE users (name TEXT)`)

	stream, err := source.Stream(context.Background(), "INSERT INTO users VALUES ('Mallory')")
	if err == nil {
		_, errs := drain(t, stream)
		stream.Close()
		require.NotEmpty(t, errs, "write must fail on a read-only connection")
	}

	check, err := source.Stream(context.Background(), "SELECT count(*) FROM users")
	require.NoError(t, err)
	defer check.Close()
	rows, _ := drain(t, check)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0][0].Value)
}

func TestSQLiteConnector_PathsWithURICharacters(t *testing.T) {
	for _, name := range []string{"data#1.db", "a?b.db", "100%.db", "50%25.db"} {
		t.Run(name, func(t *testing.T) {
			created := testhelpers.NewSQLiteDatabase(t, `CREATE TABLE t (a TEXT)`, `INSERT INTO t VALUES ('found')`)
			path := filepath.Join(filepath.Dir(created), name)
			require.NoError(t, os.Rename(created, path))

			source, err := NewSQLiteConnector(path).Connect(context.Background())
			require.NoError(t, err)
			defer source.Close()

			stream, err := source.Stream(context.Background(), "SELECT a FROM t")
			require.NoError(t, err)
			defer stream.Close()

			rows, errs := drain(t, stream)
			require.Empty(t, errs)
			require.Len(t, rows, 1)
			assert.Equal(t, "found", rows[0][0].Value)
		})
	}
}

func TestSQLiteConnector_TemporalTextRoundTrip(t *testing.T) {
	source := openSQLite(t,
		`CREATE TABLE events (at DATETIME, stamp TIMESTAMP, day DATE, clock TIME, zoned DATETIME)`,
		`INSERT INTO events VALUES ('2024-01-02 03:04:05', '2024-01-02 03:04:05.25', '2024-01-02', '03:04:05', '2024-01-02 03:04:05+02:00')`,
	)

	stream, err := source.Stream(context.Background(), "SELECT * FROM events")
	require.NoError(t, err)
	defer stream.Close()

	rows, errs := drain(t, stream)
	require.Empty(t, errs)
	require.Len(t, rows, 1)

	want := []string{
		"2024-01-02 03:04:05",
		"2024-01-02 03:04:05.25",
		"2024-01-02",
		"03:04:05",
		"2024-01-02T03:04:05+02:00",
	}
	normalizer := cell.NewNormalizer(logging.NewNullLogger())
	for i, c := range rows[0] {
		got, ok, err := normalizer.Normalize(c)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want[i], got, "column %d (%s)", i, c.DatabaseType)
	}
}

func TestSQLiteConnector_OpenErrors(t *testing.T) {
	_, err := NewSQLiteConnector("/nonexistent/dir/missing.db").Connect(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewSQLiteConnector(t.TempDir()).Connect(context.Background())
	assert.ErrorContains(t, err, "is a directory")
}

func TestSQLSource_StreamInvalidSQL(t *testing.T) {
	source := openSQLite(t, `CREATE TABLE t (a TEXT)`)

	_, err := source.Stream(context.Background(), "SELECT * FROM missing_table")
	assert.Error(t, err)
}

func TestSQLSource_CancelledContext(t *testing.T) {
	source := openSQLite(t, `CREATE TABLE t (a TEXT)`, `INSERT INTO t VALUES ('x')`)

	stream, err := source.Stream(context.Background(), "SELECT * FROM t")
	require.NoError(t, err)
	defer stream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = stream.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
