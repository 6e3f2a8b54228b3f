package querydoc

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

func build(t *testing.T, src string) string {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	stmt, err := doc.Build()
	require.NoError(t, err)
	return format.String(stmt)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "full select",
			input: `
kind: select
fields: [book.id, {as: total, sum: book.price}]
from:
  - table: book
    join:
      - {kind: left, table: author, on: {eq: [book.author_id, author.id]}}
where: {and: [{gt: [book.pages, 100]}, {like: [author.name, {text: "%Her%"}]}]}
group_by: [book.id]
having: {gt: [{count: book.id}, 1]}
order_by: [{desc: book.id}, book.title]
limit: 10
offset: 5
`,
			expected: "SELECT book.id, sum(book.price) AS total " +
				"FROM book LEFT JOIN author ON book.author_id = author.id " +
				"WHERE book.pages > 100 AND author.name LIKE '%Her%' " +
				"GROUP BY book.id HAVING count(book.id) > 1 " +
				"ORDER BY book.id DESC, book.title LIMIT 10 OFFSET 5",
		},
		{
			name:     "kind defaults to select",
			input:    `{"fields": ["id"], "from": ["public.contact"]}`,
			expected: "SELECT id FROM public.contact",
		},
		{
			name: "insert values",
			input: `
kind: insert
table: book
columns: [id, title]
values:
  - [1, Dune]
  - [2, {null: text}]
returning: [id]
`,
			expected: "INSERT INTO book(id, title) VALUES (1, 'Dune'), (2, null) RETURNING id",
		},
		{
			name:     "insert without values",
			input:    "kind: insert\ntable: audit\n",
			expected: "INSERT INTO audit DEFAULT VALUES",
		},
		{
			name: "insert select",
			input: `
kind: insert
table: archive
columns: [id]
source: {fields: [id], from: [book], where: {lt: [id, 10]}}
`,
			expected: "INSERT INTO archive(id) SELECT id FROM book WHERE id < 10",
		},
		{
			name: "update",
			input: `
kind: update
table: book
set:
  title: New
  pages: {add: [pages, 1]}
from: [{table: author, as: a}]
where: {eq: [id, {uint8: 7}]}
returning: [id]
`,
			expected: "UPDATE book SET title = 'New', pages = pages + 1 FROM author AS a WHERE id = 7 RETURNING id",
		},
		{
			name:     "delete",
			input:    "kind: delete\ntable: s.book\nwhere: {is_null: author}\n",
			expected: "DELETE FROM s.book WHERE author ISNULL",
		},
		{
			name: "values with set operation and limit",
			input: `
kind: values
values: [[1], [2]]
union_all: {kind: values, values: [[3]]}
limit: 2
`,
			expected: "VALUES (1), (2) UNION ALL VALUES (3) LIMIT 2",
		},
		{
			name: "select set operations fold in order",
			input: `
fields: [a]
from: [t]
union: {fields: [a], from: [u]}
except: {fields: [a], from: [v]}
`,
			expected: "SELECT a FROM t UNION SELECT a FROM u EXCEPT SELECT a FROM v",
		},
		{
			name: "recursive cte",
			input: `
with:
  - name: t
    columns: [n]
    query: {kind: values, values: [[1]]}
recursive: true
fields: [n]
from: [t]
`,
			expected: "WITH RECURSIVE t(n) AS (VALUES (1)) SELECT n FROM t",
		},
		{
			name: "scalar subquery",
			input: `
fields: [id]
from: [book]
where: {eq: [author_id, {select: {fields: [id], from: [author], where: {eq: [name, {text: Herbert}]}}}]}
`,
			expected: "SELECT id FROM book WHERE author_id = (SELECT id FROM author WHERE name = 'Herbert')",
		},
		{
			name:     "subquery table",
			input:    "fields: [x]\nfrom: [{select: {kind: values, values: [[1]]}, as: v}]\n",
			expected: "SELECT x FROM (VALUES (1)) AS v",
		},
		{
			name: "joins",
			input: `
fields: [id]
from:
  - table: a
    join:
      - {table: b, on: {eq: [a.id, b.id]}}
      - {kind: natural_left, table: c}
      - {kind: cross, call: generate_series, args: [1, 3]}
`,
			expected: "SELECT id FROM a JOIN b ON a.id = b.id NATURAL LEFT JOIN c CROSS JOIN generate_series(1, 3)",
		},
		{
			name: "functions and generic operators",
			input: `
fields:
  - {call: coalesce, args: [a, 0]}
  - {call: pg_catalog.now}
  - {binop: [a, "||", b]}
  - {postop: [a, "IS NOT NULL"]}
  - {preop: ["-", a]}
  - {not: {paren: {or: [a, b, c]}}}
  - {as: c, expr: col}
from: [t]
`,
			expected: "SELECT coalesce(a, 0), pg_catalog.now(), a || b, a IS NOT NULL, - a, NOT (a OR b OR c), col AS c FROM t",
		},
		{
			name:     "quoting follows the dialect",
			input:    "fields: [firstName]\nfrom: [user]\n",
			expected: `SELECT "firstName" FROM user`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, build(t, tt.input))
		})
	}
}

func TestBuild_TypedLiteralsBind(t *testing.T) {
	doc, err := Parse([]byte(`
fields:
  - {uint8: 7}
  - {bytes: "01ab"}
  - {timestamp: "2024-03-04T05:06:07Z"}
  - true
  - {int16: -3}
  - 18446744073709551615
`))
	require.NoError(t, err)
	stmt, err := doc.Build()
	require.NoError(t, err)

	sql, args := format.Compile(stmt, dialect.Postgres)
	assert.Equal(t, "SELECT $1, $2, $3, $4, $5, $6", sql)
	assert.Equal(t, []core.Value{
		core.Uint8(7),
		core.Bytes([]byte{0x01, 0xab}),
		core.Timestamp(time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)),
		core.Bool(true),
		core.Int16(-3),
		core.Uint64(18446744073709551615),
	}, args)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
	}{
		{"unknown kind", "kind: merge\n", `kind: unknown kind "merge"`},
		{"missing table", "kind: delete\n", "table: table is required"},
		{"field not valid for kind", "kind: select\ntable: x\n", `table: table is not valid for kind "select"`},
		{"limit on insert", "kind: insert\ntable: x\nlimit: 1\n", `limit: limit is not valid for kind "insert"`},
		{"update without set", "kind: update\ntable: x\n", "set: set must be a mapping"},
		{"unknown operator", "where: {foo: [a, b]}\n", `where.foo (line 1): unknown operator "foo"`},
		{"wrong arity", "where: {and: [{eq: [a]}, b]}\n", "where.and[0].eq (line 1): expected 2 operands, got 1"},
		{"chain needs two", "where: {or: [a]}\n", "expected at least 2 operands, got 1"},
		{"float", "fields: [1.5]\n", "fields[0] (line 1): floating point values are not supported"},
		{"untyped null", "fields: [null]\n", "null needs a kind"},
		{"unknown null kind", "fields: [{null: float}]\n", `unknown value kind "float"`},
		{"bad typed literal", "fields: [{uint8: 300}]\n", "invalid uint8 literal"},
		{"bad hex", "fields: [{bytes: zz}]\n", "invalid bytes literal"},
		{"empty name part", "fields: [a..b]\n", "has an empty name part"},
		{"too many parts", "from: [a.b.c]\n", "has too many name parts"},
		{"list as expression", "where: [a]\n", "expected an expression, got a list"},
		{"multi-key mapping", "where: {eq: [a, b], ne: [a, b]}\n", "exactly one key"},
		{"join without on", "from: [{table: a, join: [{table: b}]}]\n", "from[0].join[0] (line 1): join requires on"},
		{"cross join with on", "from: [{table: a, join: [{kind: cross, table: b, on: true}]}]\n", "cross join takes no condition"},
		{"unknown join kind", "from: [{table: a, join: [{kind: outer, table: b, on: true}]}]\n", `unknown join kind "outer"`},
		{"two sources", "from: [{table: a, call: f}]\n", "expected exactly one of table, select or call"},
		{"unknown from key", "from: [{table: a, alias: b}]\n", `from[0].alias (line 1): unknown key "alias"`},
		{"row not a list", "kind: values\nvalues: [1]\n", "values[0] (line 2): row must be a list of values"},
		{"insert source with limit", "kind: insert\ntable: t\nsource: {fields: [a], from: [u], limit: 1}\n", "source must be a select"},
		{"source and values", "kind: insert\ntable: t\nvalues: [[1]]\nsource: {fields: [a]}\n", "mutually exclusive"},
		{"set operand must produce rows", "fields: [a]\nunion: {kind: delete, table: t}\n", "operand of union must produce rows"},
		{"cte without name", "with: [{query: {fields: [a]}}]\nfields: [a]\n", "with[0].name: name is required"},
		{"nested subquery unknown key", "where: {eq: [a, {select: {fieldz: [a]}}]}\n", "fieldz"},
		{"nested path", "with: [{name: t, query: {where: {gt: [a]}}}]\n", "with[0].query.where.gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			_, err = doc.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)

			var docErr *Error
			assert.True(t, errors.As(err, &docErr), "expected *querydoc.Error, got %T", err)
		})
	}
}

func TestError_Fields(t *testing.T) {
	doc, err := Parse([]byte("kind: select\nwhere:\n  foo: [a, b]\n"))
	require.NoError(t, err)
	_, err = doc.Build()

	var docErr *Error
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, &Error{Path: "where.foo", Line: 3, Msg: `unknown operator "foo"`}, docErr)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse query document")
	assert.Contains(t, err.Error(), "colour")

	_, err = Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")

	_, err = Parse([]byte("limit: -1\n"))
	require.Error(t, err)
}

func TestParseAll(t *testing.T) {
	docs, err := ParseAll(strings.NewReader("fields: [a]\n---\nkind: delete\ntable: t\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, KindDelete, docs[1].Kind)

	_, err = ParseAll(strings.NewReader("fields: [a]\n---\nnope: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query document 2")
}
