package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapquery/internal/testutil"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
	"github.com/leapstack-labs/leapquery/pkg/query"
	"github.com/leapstack-labs/leapquery/pkg/schema"
)

type Book struct {
	ID     int64 `db:"id"`
	Title  string
	Author *string
	Year   uint16
}

var books = schema.MustOf(Book{})

func connect(t *testing.T, driver string) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), adapter.Config{
		Path:    MemoryPath,
		Options: map[string]string{"driver": driver},
	}))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func scanBook(rows *sql.Rows) (Book, error) {
	var b Book
	var author sql.NullString
	if err := rows.Scan(&b.ID, &b.Title, &author, &b.Year); err != nil {
		return b, err
	}
	if author.Valid {
		b.Author = &author.String
	}
	return b, nil
}

func TestColumnsQuery(t *testing.T) {
	sqlStr, args := format.Compile(ColumnsQuery("main", "book"), dialect.SQLite)
	assert.Equal(t, `SELECT "name", "type", "notnull", "cid" + ? FROM pragma_table_info(?, ?) ORDER BY "cid"`, sqlStr)
	assert.Equal(t, []core.Value{core.Int64(1), core.Text("book"), core.Text("main")}, args)
}

func TestConnect_UnknownDriver(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{Options: map[string]string{"driver": "odbc"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sqlite driver")
}

func TestAdapter_Registry(t *testing.T) {
	adp, err := adapter.NewAdapter(adapter.Config{Type: "sqlite"}, nil)
	require.NoError(t, err)
	assert.Same(t, dialect.SQLite, adp.Dialect())
}

func TestAdapter_RoundTrip(t *testing.T) {
	for _, driver := range []string{DriverModernc, DriverMattn} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			adp := connect(t, driver)

			require.NoError(t, adp.Exec(ctx, `CREATE TABLE book (id INTEGER PRIMARY KEY, title TEXT NOT NULL, author TEXT, year INTEGER)`))

			e := adapter.NewExecutor(adp, adapter.WithPersistent(true), adapter.WithLogger(testutil.NewTestLogger(t)))
			defer func() { _ = e.Close() }()

			herbert := "Frank Herbert"
			for _, b := range []Book{
				{ID: 1, Title: "Dune", Author: &herbert, Year: 1965},
				{ID: 2, Title: "Anonymous Tales", Year: 1900},
			} {
				_, err := e.Exec(ctx, query.InsertInto(books).Values(books.Record(b)))
				require.NoError(t, err)
			}

			all, err := adapter.FetchAll(ctx, e, query.SelectFrom(books).OrderBy(query.Desc(books.Table().Column("id"))), scanBook)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Anonymous Tales", all[0].Title)
			assert.Nil(t, all[0].Author)
			require.NotNil(t, all[1].Author)
			assert.Equal(t, herbert, *all[1].Author)
			assert.Equal(t, uint16(1965), all[1].Year)

			idCol, _ := books.Column("id")
			yearCol, _ := books.Column("year")
			titleCol, _ := books.Column("title")

			_, err = e.Exec(ctx, query.UpdateOf(books).Set("title", "Dune Messiah").Filter(query.Eq(idCol, 1)))
			require.NoError(t, err)

			one, err := adapter.FetchOne(ctx, e, query.Select(titleCol).From(books.Table()).Filter(query.Eq(idCol, 1)),
				func(rows *sql.Rows) (string, error) {
					var s string
					err := rows.Scan(&s)
					return s, err
				})
			require.NoError(t, err)
			assert.Equal(t, "Dune Messiah", one)

			_, ok, err := adapter.FetchOptional(ctx, e, query.SelectFrom(books).Filter(query.Gt(yearCol, 2000)), scanBook)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = e.Exec(ctx, query.DeleteFrom(books).Filter(query.IsNull(books.Table().Column("author"))))
			require.NoError(t, err)

			remaining, err := adapter.FetchAll(ctx, e, query.Select(query.Count(idCol)).From(books.Table()), adapter.ScanValues)
			require.NoError(t, err)
			assert.Equal(t, [][]any{{int64(1)}}, remaining)
		})
	}
}

func TestAdapter_BindsEveryKind(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, DriverModernc)
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE kinds (b BOOLEAN, i8 INTEGER, u32 INTEGER, t TEXT, raw BLOB, n TEXT)`))

	e := adapter.NewExecutor(adp)
	_, err := e.Exec(ctx, query.Insert("kinds", "b", "i8", "u32", "t", "raw", "n").Values([]any{
		true, int8(-8), uint32(4000000000), "text", []byte{0x01, 0x02}, query.Null(core.KindText),
	}))
	require.NoError(t, err)

	row, err := adapter.FetchOne(ctx, e, query.Select("i8", "u32", "t", "raw", "n").From("kinds"), adapter.ScanMap)
	require.NoError(t, err)
	assert.Equal(t, int64(-8), row["i8"])
	assert.Equal(t, int64(4000000000), row["u32"])
	assert.Equal(t, "text", row["t"])
	assert.Equal(t, []byte{0x01, 0x02}, row["raw"])
	assert.Nil(t, row["n"])
}

func TestAdapter_RejectsUint64(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, DriverModernc)
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE counters (n INTEGER)`))

	_, err := adapter.NewExecutor(adp).Exec(ctx, query.Insert("counters", "n").Values([]any{uint64(1)}))
	var uerr *core.UnsupportedValueError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, core.KindUint64, uerr.Kind)
	assert.Equal(t, "sqlite", uerr.Backend)
}

func TestAdapter_LoadCSVAndMetadata(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, DriverModernc)

	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("id, name\n1,Ada\n2,Grace\n3,\"Hopper, Grace\"\n"), 0o600))
	require.NoError(t, adp.LoadCSV(ctx, "people", path))

	meta, err := adp.GetTableMetadata(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, "people", meta.Name)
	assert.Equal(t, int64(3), meta.RowCount)
	assert.Equal(t, []core.Column{
		{Name: "id", Type: "TEXT", Nullable: true, Position: 1},
		{Name: "name", Type: "TEXT", Nullable: true, Position: 2},
	}, meta.Columns)

	_, err = adp.GetTableMetadata(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAdapter_LoadCSVLargeFileBatches(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, DriverModernc)

	f, err := os.Create(filepath.Join(t.TempDir(), "big.csv"))
	require.NoError(t, err)
	_, err = f.WriteString("a,b,c\n")
	require.NoError(t, err)
	for range 1000 {
		_, err = f.WriteString("x,y,z\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	require.NoError(t, adp.LoadCSV(ctx, "big", f.Name()))
	meta, err := adp.GetTableMetadata(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), meta.RowCount)
}
