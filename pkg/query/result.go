package query

// ResultStmt adds LIMIT/OFFSET on top of a SELECT, VALUES or set operation.
type ResultStmt struct {
	WithClause   WithClause
	Data         Data
	LimitClause  *LimitClause
	OffsetClause *OffsetClause
}

func (*ResultStmt) node()      {}
func (*ResultStmt) stmtNode()  {}
func (*ResultStmt) rowSource() {}

// Wrap returns a Result over data with no LIMIT or OFFSET.
func Wrap(data Data) *ResultStmt {
	return &ResultStmt{Data: data}
}

func (r *ResultStmt) clone() *ResultStmt {
	c := *r
	return &c
}

// Limit sets LIMIT n, replacing any previous count.
func (r *ResultStmt) Limit(n uint32) *ResultStmt {
	c := r.clone()
	c.LimitClause = &LimitClause{Count: n}
	return c
}

// Offset sets OFFSET n, replacing any previous count.
func (r *ResultStmt) Offset(n uint32) *ResultStmt {
	c := r.clone()
	c.OffsetClause = &OffsetClause{Count: n}
	return c
}

// With appends a CTE.
func (r *ResultStmt) With(name string, stmt Stmt) *ResultStmt {
	return r.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (r *ResultStmt) WithLabeled(name string, columns []string, stmt Stmt) *ResultStmt {
	c := r.clone()
	c.WithClause = r.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (r *ResultStmt) Recursive() *ResultStmt {
	c := r.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (r *ResultStmt) NoRecursive() *ResultStmt {
	c := r.clone()
	c.WithClause.Recursive = false
	return c
}

// Union builds r UNION other.
func (r *ResultStmt) Union(other RowSource) *BinaryStmt { return Union(r, other) }

// UnionAll builds r UNION ALL other.
func (r *ResultStmt) UnionAll(other RowSource) *BinaryStmt { return UnionAll(r, other) }

// Except builds r EXCEPT other.
func (r *ResultStmt) Except(other RowSource) *BinaryStmt { return Except(r, other) }

// ExceptAll builds r EXCEPT ALL other.
func (r *ResultStmt) ExceptAll(other RowSource) *BinaryStmt { return ExceptAll(r, other) }

// Intersect builds r INTERSECT other.
func (r *ResultStmt) Intersect(other RowSource) *BinaryStmt { return Intersect(r, other) }

// IntersectAll builds r INTERSECT ALL other.
func (r *ResultStmt) IntersectAll(other RowSource) *BinaryStmt { return IntersectAll(r, other) }
