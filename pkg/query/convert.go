package query

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

// conversionPanic formats the message raised when a builder receives a Go
// type it cannot represent. This is a programming error, not a runtime one.
func conversionPanic(x any, want string) string {
	return fmt.Sprintf("query: cannot use %T as %s", x, want)
}

// flatten expands typed slices passed where a variadic list is expected,
// so that Select(schema.Columns()) behaves like Select(col1, col2, ...).
func flatten(xs []any) []any {
	var out []any
	for i, x := range xs {
		var expanded []any
		switch s := x.(type) {
		case []ColumnRef:
			expanded = spread(s)
		case []Field:
			expanded = spread(s)
		case []Expr:
			expanded = spread(s)
		case []FromItem:
			expanded = spread(s)
		case []Order:
			expanded = spread(s)
		case []Ident:
			expanded = spread(s)
		case []string:
			expanded = spread(s)
		case []Assignment:
			expanded = spread(s)
		default:
			if out != nil {
				out = append(out, x)
			}
			continue
		}
		if out == nil {
			out = slices.Clone(xs[:i])
		}
		out = append(out, expanded...)
	}
	if out == nil {
		return xs
	}
	return out
}

func spread[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func toExpr(x any) Expr {
	switch x := x.(type) {
	case ExprBuilder:
		return x.expr
	case Expr:
		return x
	case string:
		return Column(x)
	case Ident:
		return ColumnRef{Name: x}
	case Stmt:
		return &SubqueryExpr{Stmt: x}
	}
	if v, ok := core.ValueOf(x); ok {
		return &Literal{Value: v}
	}
	panic(conversionPanic(x, "an expression"))
}

// toValueExpr is toExpr for data positions (VALUES rows), where a Go
// string is text rather than a column name.
func toValueExpr(x any) Expr {
	if s, ok := x.(string); ok {
		return Text(s)
	}
	return toExpr(x)
}

func toField(x any) Field {
	switch x := x.(type) {
	case Field:
		return x
	case ExprBuilder:
		return Field{Expr: x.expr}
	}
	return Field{Expr: toExpr(x)}
}

func toFields(xs []any) []Field {
	xs = flatten(xs)
	out := make([]Field, len(xs))
	for i, x := range xs {
		out[i] = toField(x)
	}
	return out
}

func toTableExpr(x any) TableExpr {
	switch x := x.(type) {
	case TableBuilder:
		return x.table
	case TableExpr:
		return x
	case string:
		return Table(x)
	case Ident:
		return TableRef{Name: x}
	case Schema:
		return x.Table()
	case Stmt:
		return &SubqueryTable{Stmt: x}
	}
	panic(conversionPanic(x, "a table expression"))
}

func toFromItem(x any) FromItem {
	if f, ok := x.(FromItem); ok {
		return f
	}
	return FromItem{Source: toTableExpr(x)}
}

func toFromItems(xs []any) []FromItem {
	xs = flatten(xs)
	out := make([]FromItem, len(xs))
	for i, x := range xs {
		out[i] = toFromItem(x)
	}
	return out
}

func toTableRef(x any) TableRef {
	switch x := x.(type) {
	case TableRef:
		return x
	case string:
		return Table(x)
	case Ident:
		return TableRef{Name: x}
	case Schema:
		return x.Table()
	}
	panic(conversionPanic(x, "a table reference"))
}

func toIdent(x any) Ident {
	switch x := x.(type) {
	case Ident:
		return x
	case string:
		return Ident(x)
	case ColumnRef:
		return x.Name
	}
	panic(conversionPanic(x, "an identifier"))
}

func toIdents(xs []any) []Ident {
	xs = flatten(xs)
	out := make([]Ident, len(xs))
	for i, x := range xs {
		out[i] = toIdent(x)
	}
	return out
}

func toExprs(xs []any) []Expr {
	xs = flatten(xs)
	out := make([]Expr, len(xs))
	for i, x := range xs {
		out[i] = toExpr(x)
	}
	return out
}

func toOrder(x any) Order {
	if o, ok := x.(Order); ok {
		return o
	}
	return Order{Expr: toExpr(x)}
}

func toOrders(xs []any) []Order {
	xs = flatten(xs)
	out := make([]Order, len(xs))
	for i, x := range xs {
		out[i] = toOrder(x)
	}
	return out
}

// toRow accepts a Row, a Rower, or a slice of row items. Strings inside a
// []any row are text values.
func toRow(x any) Row {
	switch x := x.(type) {
	case Row:
		return x
	case Rower:
		return x.Row()
	case []Expr:
		return Row{Exprs: slices.Clone(x)}
	case []any:
		out := make([]Expr, len(x))
		for i, e := range x {
			out[i] = toValueExpr(e)
		}
		return Row{Exprs: out}
	}
	panic(conversionPanic(x, "a row"))
}

func toRows(xs []any) []Row {
	var out []Row
	for _, x := range xs {
		if rows, ok := x.([]Row); ok {
			out = append(out, rows...)
			continue
		}
		out = append(out, toRow(x))
	}
	return out
}

func toAssignments(xs []any) []Assignment {
	xs = flatten(xs)
	out := make([]Assignment, len(xs))
	for i, x := range xs {
		a, ok := x.(Assignment)
		if !ok {
			panic(conversionPanic(x, "an assignment"))
		}
		out[i] = a
	}
	return out
}

// extend appends to a copy of s so the receiver's backing array is never
// shared with the result.
func extend[T any](s []T, items ...T) []T {
	return append(slices.Clip(s), items...)
}
