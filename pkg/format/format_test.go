package format

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	q "github.com/leapstack-labs/leapquery/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    q.Node
		expected string
	}{
		{
			name:     "select from",
			input:    q.Select("id").From("user"),
			expected: "SELECT id FROM user",
		},
		{
			name:     "schema qualified table",
			input:    q.Select("id", "name").From(q.SchemaTable("public", "contact")),
			expected: "SELECT id, name FROM public.contact",
		},
		{
			name:     "insert values returning",
			input:    q.Insert("book", "id", "name").Values([]any{1, "Dune"}).Returning("id"),
			expected: "INSERT INTO book(id, name) VALUES (1, 'Dune') RETURNING id",
		},
		{
			name: "delete with prefix and postfix",
			input: q.Delete("book").
				Filter(q.And(q.Not(q.TableColumn("book", "active")), q.IsNull(q.TableColumn("book", "name")))).
				Returning("id", "name"),
			expected: "DELETE FROM book WHERE NOT book.active AND book.name ISNULL RETURNING id, name",
		},
		{
			name:     "union",
			input:    q.Union(q.Select(1), q.Select(2)),
			expected: "SELECT 1 UNION SELECT 2",
		},
		{
			name:     "limit",
			input:    q.Select("id").From("data").Limit(10),
			expected: "SELECT id FROM data LIMIT 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestFormat_Statements(t *testing.T) {
	tests := []struct {
		name     string
		input    q.Node
		expected string
	}{
		{
			name: "full select",
			input: q.Select(
				q.TableColumn("data", "id"), q.TableColumn("data", "value"),
				q.Count("id"), q.Max("age"), q.Min("age"), q.Avg("age"),
			).
				From(q.SchemaTable("public", "data"), q.Call("unnest", q.TableColumn("data", "value"))).
				Filter(q.Eq(q.TableColumn("data", "id"), 1)).
				Filter(q.Eq(q.TableColumn("data", "name"), q.Text("name"))).
				GroupBy(q.TableColumn("data", "id")).
				Having(true).
				OrderBy(q.Desc(q.TableColumn("data", "id"))),
			expected: "SELECT data.id, data.value, count(id), max(age), min(age), avg(age) " +
				"FROM public.data, unnest(data.value) " +
				"WHERE data.id = 1 AND data.name = 'name' " +
				"GROUP BY data.id HAVING true ORDER BY data.id DESC",
		},
		{
			name: "labeled and plain ctes",
			input: q.Select("name").From("tbl1", "tbl2").
				WithLabeled("tbl1", []string{"name"}, q.Values([]any{"tbl1"})).
				With("tbl2", q.Select(q.AsField(q.Text("tbl2"), "name"))),
			expected: "WITH tbl1(name) AS (VALUES ('tbl1')), tbl2 AS (SELECT 'tbl2' AS name) SELECT name FROM tbl1, tbl2",
		},
		{
			name: "recursive cte",
			input: q.Select("n").From("t").
				WithLabeled("t", []string{"n"}, q.Values([]any{1})).
				Recursive(),
			expected: "WITH RECURSIVE t(n) AS (VALUES (1)) SELECT n FROM t",
		},
		{
			name:     "recursive without ctes renders no with",
			input:    q.Select(1).Recursive(),
			expected: "SELECT 1",
		},
		{
			name:     "insert select",
			input:    q.Insert("user", "id", "name").Select(q.Select(1, q.Text("name"))).Returning("id", "name"),
			expected: "INSERT INTO user(id, name) SELECT 1, 'name' RETURNING id, name",
		},
		{
			name:     "insert default values",
			input:    q.Insert("audit"),
			expected: "INSERT INTO audit DEFAULT VALUES",
		},
		{
			name:     "insert several rows",
			input:    q.Insert("t", "a", "b").Values([]any{1, "x"}, q.NewRow(2, "y")),
			expected: "INSERT INTO t(a, b) VALUES (1, 'x'), (2, 'y')",
		},
		{
			name:     "values limit",
			input:    q.Values([]any{1}, []any{2}).Limit(10),
			expected: "VALUES (1), (2) LIMIT 10",
		},
		{
			name:     "limit offset",
			input:    q.Select("id").From("t").Limit(10).Offset(5),
			expected: "SELECT id FROM t LIMIT 10 OFFSET 5",
		},
		{
			name:     "update",
			input:    q.Update("book").Set("name", "X").Filter(q.Eq("id", 2)).Returning("id"),
			expected: "UPDATE book SET name = 'X' WHERE id = 2 RETURNING id",
		},
		{
			name: "update from",
			input: q.Update("book").Set("author", q.TableColumn("a", "name")).
				From(q.AsTable("author", "a")).
				Filter(q.Eq(q.TableColumn("a", "id"), q.TableColumn("book", "author_id"))),
			expected: "UPDATE book SET author = a.name FROM author AS a WHERE a.id = book.author_id",
		},
		{
			name:     "update without assignments",
			input:    q.Update("t"),
			expected: "UPDATE t SET",
		},
		{
			name:     "delete",
			input:    q.Delete("book").Filter(q.Eq("id", 1)),
			expected: "DELETE FROM book WHERE id = 1",
		},
		{
			name:     "union all",
			input:    q.UnionAll(q.Select(1), q.Select(2)),
			expected: "SELECT 1 UNION ALL SELECT 2",
		},
		{
			name:     "set operation with its own with",
			input:    q.Select("a").From("t").Except(q.Select("a").From("u")).With("t", q.Values([]any{1})),
			expected: "WITH t AS (VALUES (1)) SELECT a FROM t EXCEPT SELECT a FROM u",
		},
		{
			name: "scalar subquery",
			input: q.Select("id").From("book").
				Filter(q.Eq("author_id", q.SubQuery(q.Select("id").From("author").Filter(q.Eq("name", q.Text("Herbert")))))),
			expected: "SELECT id FROM book WHERE author_id = (SELECT id FROM author WHERE name = 'Herbert')",
		},
		{
			name:     "subquery table",
			input:    q.Select("x").From(q.AsTable(q.SubTable(q.Values([]any{1})), "v")),
			expected: "SELECT x FROM (VALUES (1)) AS v",
		},
		{
			name:     "join",
			input:    q.Select("id").From(q.Join("a", "b", q.Eq(q.TableColumn("a", "id"), q.TableColumn("b", "id")))),
			expected: "SELECT id FROM a JOIN b ON a.id = b.id",
		},
		{
			name:     "empty select list",
			input:    q.Select().From("t"),
			expected: "SELECT FROM t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestFormat_Fragments(t *testing.T) {
	tests := []struct {
		name     string
		input    q.Node
		expected string
	}{
		{"grouped or", q.And(q.Paren(q.Or("a", "b")), q.Paren(q.Or("c", "d"))), "(a OR b) AND (c OR d)"},
		{"not paren", q.Not(q.Paren(q.And(true, false))), "NOT (true AND false)"},
		{"field alias", q.AsField(1, "num"), "1 AS num"},
		{"table alias", q.AsTable("user", "person"), "user AS person"},
		{"natural left join", q.NaturalLeftJoin("a", "b"), "a NATURAL LEFT JOIN b"},
		{"cross join", q.CrossJoin("a", "b"), "a CROSS JOIN b"},
		{"full join", q.FullJoin("a", "b", true), "a FULL JOIN b ON true"},
		{"not equal", q.Ne(1, 2), "1 <> 2"},
		{"arithmetic", q.E("price").Mul(2).Add(1).Expr(), "price * 2 + 1"},
		{"ilike", q.ILike("name", q.Text("%dune%")), "name ILIKE '%dune%'"},
		{"schema column", q.SchemaColumn("s", "t", "c"), "s.t.c"},
		{"schema func", q.Call(q.SchemaFunc("pg_catalog", "now")), "pg_catalog.now()"},
		{"asc order", q.Asc("a"), "a ASC"},
		{"default order", q.Order{Expr: q.Column("a")}, "a"},
		{"assignment", q.Set("title", "it's"), "title = 'it''s'"},
		{"row", q.NewRow(1, "a", true), "(1, 'a', true)"},
		{"typed null", q.Lit((*int32)(nil)), "null"},
		{"bytes", q.Lit([]byte{0x01, 0xab}), "X'01ab'"},
		{"unsigned", q.Lit(uint64(18446744073709551615)), "18446744073709551615"},
		{"quoted identifier", q.Column("firstName"), `"firstName"`},
		{"identifier with quote", q.Column(`we"ird`), `"we""ird"`},
		{"ident", q.Ident("Mixed"), `"Mixed"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestFormat_Dialects(t *testing.T) {
	stmt := q.Select("id", "name", q.Count("id")).
		From("book").
		Filter(q.Eq("id", 1)).
		Filter(q.Eq("name", q.Text("Dune")))

	tests := []struct {
		dialect  *dialect.Dialect
		expected string
	}{
		{dialect.Postgres, `SELECT "id", "name", count("id") FROM "book" WHERE "id" = $1 AND "name" = $2`},
		{dialect.MySQL, "SELECT `id`, `name`, count(`id`) FROM `book` WHERE `id` = ? AND `name` = ?"},
		{dialect.SQLite, `SELECT "id", "name", count("id") FROM "book" WHERE "id" = ? AND "name" = ?`},
		{dialect.DuckDB, `SELECT "id", "name", count("id") FROM "book" WHERE "id" = ? AND "name" = ?`},
		{dialect.Display, `SELECT id, name, count(id) FROM book WHERE id = ? AND name = ?`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			sql, args := Compile(stmt, tt.dialect)
			assert.Equal(t, tt.expected, sql)
			assert.Equal(t, []core.Value{core.Int64(1), core.Text("Dune")}, args)
		})
	}
}

func TestFormat_InlinePerDialect(t *testing.T) {
	stmt := q.Insert("book", "id", "title").Values([]any{1, "Dune"})

	assert.Equal(t, `INSERT INTO "book"("id", "title") VALUES (1, 'Dune')`, Inline(stmt, dialect.Postgres))
	assert.Equal(t, "INSERT INTO `book`(`id`, `title`) VALUES (1, 'Dune')", Inline(stmt, dialect.MySQL))

	out := Build(stmt, dialect.Postgres, ModeInline)
	assert.Nil(t, out.Args)
}

func TestFormat_LimitIsNeverBound(t *testing.T) {
	sql, args := Compile(q.Select("id").From("t").Filter(q.Gt("id", 3)).Limit(10).Offset(20), dialect.Postgres)
	assert.Equal(t, `SELECT "id" FROM "t" WHERE "id" > $1 LIMIT 10 OFFSET 20`, sql)
	assert.Equal(t, []core.Value{core.Int64(3)}, args)
}

func TestFormat_UnsupportedKindsStillRender(t *testing.T) {
	sql, args := Compile(q.Select(q.Lit(uint64(7))), dialect.Postgres)
	assert.Equal(t, "SELECT $1", sql)
	require.Len(t, args, 1)
	assert.Equal(t, core.KindUint64, args[0].Kind())
}

var dollarRe = regexp.MustCompile(`\$(\d+)`)

func TestFormat_PlaceholdersMatchArgs(t *testing.T) {
	trees := []q.Node{
		q.Select("id").From("book").Filter(q.Eq("id", 1)),
		q.Insert("t", "a", "b", "c").Values([]any{1, "x", true}, []any{2, "y", false}),
		q.Update("t").Set("a", 1).Set("b", "two").Filter(q.Lt("c", 3)).Returning("a"),
		q.Delete("t").Filter(q.Or(q.Eq("a", 1), q.Eq("b", q.Text("b")))),
		q.Select(q.Call("coalesce", "a", 0)).
			From(q.LeftJoin("a", "b", q.Eq(q.TableColumn("b", "k"), 9))).
			Filter(q.Eq("x", q.SubQuery(q.Select(q.Lit(5))))).
			Having(q.Gt(q.Count("x"), 10)).
			Limit(3),
		q.Union(q.Select(1), q.Values([]any{2}, []any{3})).With("w", q.Select(4)),
		q.Select(q.Lit((*int64)(nil)), q.Lit([]byte("ab"))),
	}

	for i, tree := range trees {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			sql, args := Compile(tree, dialect.Postgres)
			matches := dollarRe.FindAllStringSubmatch(sql, -1)
			require.Len(t, matches, len(args), sql)
			for n, m := range matches {
				assert.Equal(t, strconv.Itoa(n+1), m[1], "placeholders must be numbered in reading order")
			}

			qsql, qargs := Compile(tree, dialect.MySQL)
			assert.Equal(t, len(qargs), strings.Count(qsql, "?"))
			assert.Equal(t, args, qargs)
		})
	}
}

func TestFormat_ArgsFollowTreeOrder(t *testing.T) {
	stmt := q.Update("t").
		Set("a", 1).
		Set("b", 2).
		Filter(q.And(q.Eq("c", 3), q.Eq("d", q.SubQuery(q.Select(4).Filter(q.Eq("e", 5)))))).
		Returning(q.AsField(q.Add("a", 6), "a6"))

	_, args := Compile(stmt, dialect.Postgres)
	want := []core.Value{core.Int64(1), core.Int64(2), core.Int64(3), core.Int64(4), core.Int64(5), core.Int64(6)}
	assert.Equal(t, want, args)
}

func TestFormat_Deterministic(t *testing.T) {
	stmt := q.Select("a", q.Sum("b")).From("t").GroupBy("a").OrderBy(q.Desc("a"))
	first := Inline(stmt, dialect.Postgres)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Inline(stmt, dialect.Postgres))
	}
}

func TestFormat_SharedPrefix(t *testing.T) {
	base := q.Select("id").From("book")
	a := base.Filter(q.Eq("id", 1))
	b := base.Filter(q.Eq("id", 2))

	assert.Equal(t, "SELECT id FROM book", String(base))
	assert.Equal(t, "SELECT id FROM book WHERE id = 1", String(a))
	assert.Equal(t, "SELECT id FROM book WHERE id = 2", String(b))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("params")
	require.NoError(t, err)
	assert.Equal(t, ModeParams, m)
	assert.Equal(t, "params", m.String())

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeInline, m)

	_, err = ParseMode("pretty")
	assert.Error(t, err)
}
