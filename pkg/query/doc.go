// Package query is a typed SQL statement builder.
//
// Statements are trees of plain Go values: references (ColumnRef, TableRef,
// FuncRef), expressions (Expr), table expressions (TableExpr), list items
// (Field, FromItem, Row, Order, Cte), clauses and statements. Trees are
// built with free functions and fluent methods and are never mutated in
// place: every builder method returns a new statement and leaves its
// receiver untouched, so a partially built statement can be shared and
// extended in several directions.
//
// Builder entry points accept any. A Go string is a column (or, in FROM
// position, a table); every other primitive, and pointers to primitives,
// become literal values through core.ValueOf. Use Text for text literals.
//
//	stmt := query.Select("id", "name").
//		From("book").
//		Filter(query.Eq("id", 1)).
//		OrderBy(query.Desc("id"))
//
// Rendering lives in pkg/format; this package performs no I/O.
package query
