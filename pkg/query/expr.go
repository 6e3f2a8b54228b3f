package query

import "github.com/leapstack-labs/leapquery/pkg/core"

// ---------- Expression Types ----------

// Literal is a scalar value. It renders inline or as a bound placeholder.
type Literal struct {
	Value core.Value
}

// FuncCall is a function applied to arguments: name(arg, ...).
// It is valid both as an expression and as a table-valued FROM item.
type FuncCall struct {
	Func FuncRef
	Args []Expr
}

// PrefixExpr is a unary operator written before its operand: NOT x.
type PrefixExpr struct {
	Op   string
	Expr Expr
}

// InfixExpr is a binary operator: left op right.
type InfixExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

// PostfixExpr is a unary operator written after its operand: x ISNULL.
type PostfixExpr struct {
	Expr Expr
	Op   string
}

// ParenExpr wraps an expression in parentheses.
type ParenExpr struct {
	Expr Expr
}

// SubqueryExpr is a scalar subquery: (stmt).
type SubqueryExpr struct {
	Stmt Stmt
}

func (*Literal) node()      {}
func (*FuncCall) node()     {}
func (*PrefixExpr) node()   {}
func (*InfixExpr) node()    {}
func (*PostfixExpr) node()  {}
func (*ParenExpr) node()    {}
func (*SubqueryExpr) node() {}

func (*Literal) exprNode()      {}
func (*FuncCall) exprNode()     {}
func (*PrefixExpr) exprNode()   {}
func (*InfixExpr) exprNode()    {}
func (*PostfixExpr) exprNode()  {}
func (*ParenExpr) exprNode()    {}
func (*SubqueryExpr) exprNode() {}

func (*FuncCall) tableExprNode() {}

// Lit returns a literal for any value accepted by core.ValueOf.
// Unlike the generic conversion, a Go string becomes text, not a column.
func Lit(x any) *Literal {
	v, ok := core.ValueOf(x)
	if !ok {
		panic(conversionPanic(x, "a literal"))
	}
	return &Literal{Value: v}
}

// Text returns a text literal.
func Text(s string) *Literal {
	return &Literal{Value: core.Text(s)}
}

// Null returns a typed null literal.
func Null(kind core.Kind) *Literal {
	return &Literal{Value: core.Null(kind)}
}

// SubQuery wraps a statement for use as a scalar expression.
func SubQuery(stmt Stmt) *SubqueryExpr {
	return &SubqueryExpr{Stmt: stmt}
}
