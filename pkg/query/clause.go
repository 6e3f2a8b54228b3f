package query

// ---------- Clause Types ----------

// SelectClause is SELECT field, ...
type SelectClause struct {
	Fields []Field
}

// FromClause is FROM item, ...
type FromClause struct {
	Tables []FromItem
}

// WhereClause is WHERE cond.
type WhereClause struct {
	Cond Expr
}

// GroupByClause is GROUP BY expr, ...
type GroupByClause struct {
	Exprs []Expr
}

// HavingClause is HAVING cond.
type HavingClause struct {
	Cond Expr
}

// OrderByClause is ORDER BY order, ...
type OrderByClause struct {
	Orders []Order
}

// InsertClause is INSERT INTO target(columns).
type InsertClause struct {
	Target  TableRef
	Columns []Ident
}

// ValuesClause is VALUES row, ...
type ValuesClause struct {
	Rows []Row
}

// ReturningClause is RETURNING field, ...
type ReturningClause struct {
	Fields []Field
}

// UpdateClause is UPDATE target.
type UpdateClause struct {
	Target TableRef
}

// DeleteClause is DELETE FROM target.
type DeleteClause struct {
	Target TableRef
}

// SetClause is SET column = value, ...
type SetClause struct {
	Assignments []Assignment
}

// WithClause is WITH [RECURSIVE] cte, ...
// Every statement carries one; it renders only when it holds CTEs.
type WithClause struct {
	Recursive bool
	CTEs      []Cte
}

// LimitClause is LIMIT count.
type LimitClause struct {
	Count uint32
}

// OffsetClause is OFFSET count.
type OffsetClause struct {
	Count uint32
}

func (SelectClause) node()    {}
func (FromClause) node()      {}
func (WhereClause) node()     {}
func (GroupByClause) node()   {}
func (HavingClause) node()    {}
func (OrderByClause) node()   {}
func (InsertClause) node()    {}
func (ValuesClause) node()    {}
func (ReturningClause) node() {}
func (UpdateClause) node()    {}
func (DeleteClause) node()    {}
func (SetClause) node()       {}
func (WithClause) node()      {}
func (LimitClause) node()     {}
func (OffsetClause) node()    {}

func (SelectClause) clauseNode()    {}
func (FromClause) clauseNode()      {}
func (WhereClause) clauseNode()     {}
func (GroupByClause) clauseNode()   {}
func (HavingClause) clauseNode()    {}
func (OrderByClause) clauseNode()   {}
func (InsertClause) clauseNode()    {}
func (ValuesClause) clauseNode()    {}
func (ReturningClause) clauseNode() {}
func (UpdateClause) clauseNode()    {}
func (DeleteClause) clauseNode()    {}
func (SetClause) clauseNode()       {}
func (WithClause) clauseNode()      {}
func (LimitClause) clauseNode()     {}
func (OffsetClause) clauseNode()    {}

// IsEmpty reports whether the WITH clause holds no CTEs.
func (w WithClause) IsEmpty() bool { return len(w.CTEs) == 0 }

func (w WithClause) with(cte Cte) WithClause {
	return WithClause{Recursive: w.Recursive, CTEs: extend(w.CTEs, cte)}
}

// newCte builds a WITH entry; the statement is stored as given.
func newCte(name string, columns []string, stmt Stmt) Cte {
	var cols []Ident
	for _, col := range columns {
		cols = append(cols, Ident(col))
	}
	return Cte{Name: Ident(name), Columns: cols, Stmt: stmt}
}

// andWhere AND-combines cond into an optional WHERE clause.
func andWhere(prev *WhereClause, cond Expr) *WhereClause {
	if prev == nil {
		return &WhereClause{Cond: cond}
	}
	return &WhereClause{Cond: &InfixExpr{Left: prev.Cond, Op: OpAnd, Right: cond}}
}

func andHaving(prev *HavingClause, cond Expr) *HavingClause {
	if prev == nil {
		return &HavingClause{Cond: cond}
	}
	return &HavingClause{Cond: &InfixExpr{Left: prev.Cond, Op: OpAnd, Right: cond}}
}

func extendFrom(prev *FromClause, items []FromItem) *FromClause {
	if prev == nil {
		return &FromClause{Tables: items}
	}
	return &FromClause{Tables: extend(prev.Tables, items...)}
}

func extendReturning(prev *ReturningClause, fields []Field) *ReturningClause {
	if prev == nil {
		return &ReturningClause{Fields: fields}
	}
	return &ReturningClause{Fields: extend(prev.Fields, fields...)}
}
