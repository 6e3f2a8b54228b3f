package duckdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapquery/internal/testutil"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

func connect(t *testing.T, cfg core.AdapterConfig) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name:      "in-memory",
			setupPath: func(_ *testing.T) string { return ":memory:" },
		},
		{
			name:      "default path",
			setupPath: func(_ *testing.T) string { return "" },
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.NoError(t, err, "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := tt.setupPath(t)
			adp := connect(t, core.AdapterConfig{Path: dbPath})
			assert.True(t, adp.IsConnected())

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	assert.ErrorIs(t, adp.Exec(ctx, "SELECT 1"), adapter.ErrNotConnected)
	_, err := adp.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
	assert.ErrorIs(t, adp.LoadCSV(ctx, "t", "t.csv"), adapter.ErrNotConnected)
	assert.NoError(t, adp.Close())
}

func TestConnect_InvalidParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), core.AdapterConfig{
		Params: map[string]any{"extensions": []any{"bad name"}},
	})
	require.Error(t, err)
	assert.False(t, adp.IsConnected())
}

func TestConnect_WithSettings(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{
		Path: ":memory:",
		Params: map[string]any{
			"settings": map[string]any{"threads": 2},
		},
	})

	rows, err := adp.Query(ctx, "SELECT current_setting('threads')")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())

	var threads string
	require.NoError(t, rows.Scan(&threads))
	assert.Equal(t, "2", threads)
}

func TestAdapter_ExecutorRoundTrip(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE events (id UBIGINT, small UTINYINT, name VARCHAR, at TIMESTAMP, note VARCHAR)`))

	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	e := adapter.NewExecutor(adp, adapter.WithLogger(testutil.NewTestLogger(t)))

	_, err := e.Exec(ctx, query.Insert("events", "id", "small", "name", "at", "note").Values(
		[]any{uint64(18446744073709551615), uint8(200), "launch", at, query.Null(core.KindText)},
	))
	require.NoError(t, err)

	type event struct {
		ID   uint64
		Name string
		At   time.Time
		Note sql.NullString
	}
	got, err := adapter.FetchOne(ctx, e,
		query.Select("id", "name", "at", "note").From("events").Filter(query.Eq("small", uint8(200))),
		func(rows *sql.Rows) (event, error) {
			var ev event
			err := rows.Scan(&ev.ID, &ev.Name, &ev.At, &ev.Note)
			return ev, err
		})
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), got.ID)
	assert.Equal(t, "launch", got.Name)
	assert.True(t, at.Equal(got.At))
	assert.False(t, got.Note.Valid)
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})

	require.NoError(t, adp.Exec(ctx, `
		CREATE TABLE products (
			product_id INTEGER NOT NULL,
			name VARCHAR,
			price DOUBLE,
			in_stock BOOLEAN
		)
	`))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO products VALUES (1, 'Widget', 9.99, true), (2, 'Gadget', 19.99, false)`))

	meta, err := adp.GetTableMetadata(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, "products", meta.Name)
	assert.Equal(t, int64(2), meta.RowCount)

	want := []core.Column{
		{Name: "product_id", Type: "INTEGER", Nullable: false, Position: 1},
		{Name: "name", Type: "VARCHAR", Nullable: true, Position: 2},
		{Name: "price", Type: "DOUBLE", Nullable: true, Position: 3},
		{Name: "in_stock", Type: "BOOLEAN", Nullable: true, Position: 4},
	}
	assert.Equal(t, want, meta.Columns)

	_, err = adp.GetTableMetadata(ctx, "nonexistent_table")
	assert.Error(t, err)
}

func TestAdapter_LoadCSV(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})

	csvPath := filepath.Join(t.TempDir(), "test_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,name,value\n1,alice,100.5\n2,bob,200.75\n3,charlie,300.25\n"), 0o600))

	require.NoError(t, adp.LoadCSV(ctx, "test_data", csvPath))

	meta, err := adp.GetTableMetadata(ctx, "test_data")
	require.NoError(t, err)
	assert.Len(t, meta.Columns, 3)
	assert.Equal(t, int64(3), meta.RowCount)

	// A second load replaces the table.
	require.NoError(t, adp.LoadCSV(ctx, "test_data", csvPath))
	meta, err = adp.GetTableMetadata(ctx, "test_data")
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.RowCount)
}
