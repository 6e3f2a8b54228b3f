package query

// ExprBuilder wraps an expression so builders can be chained as methods:
//
//	query.E("price").Mul(2).Gt(100)
type ExprBuilder struct {
	expr Expr
}

// E converts x to an expression and wraps it.
func E(x any) ExprBuilder {
	return ExprBuilder{expr: toExpr(x)}
}

// Expr returns the wrapped expression.
func (b ExprBuilder) Expr() Expr { return b.expr }

func wrap(e Expr) ExprBuilder { return ExprBuilder{expr: e} }

func (b ExprBuilder) Add(r any) ExprBuilder   { return wrap(Add(b.expr, r)) }
func (b ExprBuilder) Sub(r any) ExprBuilder   { return wrap(Sub(b.expr, r)) }
func (b ExprBuilder) Mul(r any) ExprBuilder   { return wrap(Mul(b.expr, r)) }
func (b ExprBuilder) Div(r any) ExprBuilder   { return wrap(Div(b.expr, r)) }
func (b ExprBuilder) Rem(r any) ExprBuilder   { return wrap(Rem(b.expr, r)) }
func (b ExprBuilder) Eq(r any) ExprBuilder    { return wrap(Eq(b.expr, r)) }
func (b ExprBuilder) Ne(r any) ExprBuilder    { return wrap(Ne(b.expr, r)) }
func (b ExprBuilder) Gt(r any) ExprBuilder    { return wrap(Gt(b.expr, r)) }
func (b ExprBuilder) Ge(r any) ExprBuilder    { return wrap(Ge(b.expr, r)) }
func (b ExprBuilder) Lt(r any) ExprBuilder    { return wrap(Lt(b.expr, r)) }
func (b ExprBuilder) Le(r any) ExprBuilder    { return wrap(Le(b.expr, r)) }
func (b ExprBuilder) And(r any) ExprBuilder   { return wrap(And(b.expr, r)) }
func (b ExprBuilder) Or(r any) ExprBuilder    { return wrap(Or(b.expr, r)) }
func (b ExprBuilder) Like(r any) ExprBuilder  { return wrap(Like(b.expr, r)) }
func (b ExprBuilder) ILike(r any) ExprBuilder { return wrap(ILike(b.expr, r)) }

// Binop builds b op r.
func (b ExprBuilder) Binop(op string, r any) ExprBuilder { return wrap(Binop(b.expr, op, r)) }

// Postop builds b op.
func (b ExprBuilder) Postop(op string) ExprBuilder { return wrap(Postop(b.expr, op)) }

// Not builds NOT b.
func (b ExprBuilder) Not() ExprBuilder { return wrap(Not(b.expr)) }

// IsNull builds b ISNULL.
func (b ExprBuilder) IsNull() ExprBuilder { return wrap(IsNull(b.expr)) }

// Paren builds (b).
func (b ExprBuilder) Paren() ExprBuilder { return wrap(Paren(b.expr)) }

// As aliases the expression as a SELECT field.
func (b ExprBuilder) As(alias string) Field { return AsField(b.expr, alias) }

// Asc orders by the expression ascending.
func (b ExprBuilder) Asc() Order { return Asc(b.expr) }

// Desc orders by the expression descending.
func (b ExprBuilder) Desc() Order { return Desc(b.expr) }

// TableBuilder wraps a table expression for method-style joins:
//
//	query.T("book").Join("author", query.Eq(query.TableColumn("book", "author_id"), query.TableColumn("author", "id")))
type TableBuilder struct {
	table TableExpr
}

// T converts x to a table expression and wraps it.
func T(x any) TableBuilder {
	return TableBuilder{table: toTableExpr(x)}
}

// Table returns the wrapped table expression.
func (b TableBuilder) Table() TableExpr { return b.table }

func wrapTable(t TableExpr) TableBuilder { return TableBuilder{table: t} }

func (b TableBuilder) Join(right, on any) TableBuilder {
	return wrapTable(Join(b.table, right, on))
}

func (b TableBuilder) LeftJoin(right, on any) TableBuilder {
	return wrapTable(LeftJoin(b.table, right, on))
}

func (b TableBuilder) RightJoin(right, on any) TableBuilder {
	return wrapTable(RightJoin(b.table, right, on))
}

func (b TableBuilder) FullJoin(right, on any) TableBuilder {
	return wrapTable(FullJoin(b.table, right, on))
}

func (b TableBuilder) NaturalJoin(right any) TableBuilder {
	return wrapTable(NaturalJoin(b.table, right))
}

func (b TableBuilder) NaturalLeftJoin(right any) TableBuilder {
	return wrapTable(NaturalLeftJoin(b.table, right))
}

func (b TableBuilder) NaturalRightJoin(right any) TableBuilder {
	return wrapTable(NaturalRightJoin(b.table, right))
}

func (b TableBuilder) NaturalFullJoin(right any) TableBuilder {
	return wrapTable(NaturalFullJoin(b.table, right))
}

func (b TableBuilder) CrossJoin(right any) TableBuilder {
	return wrapTable(CrossJoin(b.table, right))
}

// As aliases the table expression as a FROM item.
func (b TableBuilder) As(alias string) FromItem { return AsTable(b.table, alias) }
