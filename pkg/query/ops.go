package query

// Operator tokens used by the builders.
const (
	OpAdd    = "+"
	OpSub    = "-"
	OpMul    = "*"
	OpDiv    = "/"
	OpRem    = "%"
	OpEq     = "="
	OpNe     = "<>"
	OpGt     = ">"
	OpGe     = ">="
	OpLt     = "<"
	OpLe     = "<="
	OpAnd    = "AND"
	OpOr     = "OR"
	OpLike   = "LIKE"
	OpILike  = "ILIKE"
	OpNot    = "NOT"
	OpIsNull = "ISNULL"
)

// Binop builds left op right.
func Binop(left any, op string, right any) *InfixExpr {
	return &InfixExpr{Left: toExpr(left), Op: op, Right: toExpr(right)}
}

// Preop builds op expr.
func Preop(op string, expr any) *PrefixExpr {
	return &PrefixExpr{Op: op, Expr: toExpr(expr)}
}

// Postop builds expr op.
func Postop(expr any, op string) *PostfixExpr {
	return &PostfixExpr{Expr: toExpr(expr), Op: op}
}

// Add builds l + r.
func Add(l, r any) *InfixExpr { return Binop(l, OpAdd, r) }

// Sub builds l - r.
func Sub(l, r any) *InfixExpr { return Binop(l, OpSub, r) }

// Mul builds l * r.
func Mul(l, r any) *InfixExpr { return Binop(l, OpMul, r) }

// Div builds l / r.
func Div(l, r any) *InfixExpr { return Binop(l, OpDiv, r) }

// Rem builds l % r.
func Rem(l, r any) *InfixExpr { return Binop(l, OpRem, r) }

// Eq builds l = r.
func Eq(l, r any) *InfixExpr { return Binop(l, OpEq, r) }

// Ne builds l <> r.
func Ne(l, r any) *InfixExpr { return Binop(l, OpNe, r) }

// Gt builds l > r.
func Gt(l, r any) *InfixExpr { return Binop(l, OpGt, r) }

// Ge builds l >= r.
func Ge(l, r any) *InfixExpr { return Binop(l, OpGe, r) }

// Lt builds l < r.
func Lt(l, r any) *InfixExpr { return Binop(l, OpLt, r) }

// Le builds l <= r.
func Le(l, r any) *InfixExpr { return Binop(l, OpLe, r) }

// And builds l AND r. No parentheses are added; use Paren to group.
func And(l, r any) *InfixExpr { return Binop(l, OpAnd, r) }

// Or builds l OR r.
func Or(l, r any) *InfixExpr { return Binop(l, OpOr, r) }

// Like builds l LIKE r.
func Like(l, r any) *InfixExpr { return Binop(l, OpLike, r) }

// ILike builds l ILIKE r.
func ILike(l, r any) *InfixExpr { return Binop(l, OpILike, r) }

// Not builds NOT x.
func Not(x any) *PrefixExpr { return Preop(OpNot, x) }

// IsNull builds x ISNULL.
func IsNull(x any) *PostfixExpr { return Postop(x, OpIsNull) }

// Paren builds (x).
func Paren(x any) *ParenExpr { return &ParenExpr{Expr: toExpr(x)} }
