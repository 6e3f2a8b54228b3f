package query

// ValuesStmt is a standalone VALUES statement.
type ValuesStmt struct {
	WithClause   WithClause
	ValuesClause ValuesClause
}

func (*ValuesStmt) node()      {}
func (*ValuesStmt) stmtNode()  {}
func (*ValuesStmt) rowSource() {}
func (*ValuesStmt) dataNode()  {}

// Values builds a VALUES statement. Each row is a Row, a Rower, a []Expr or
// a []any whose strings are text values.
func Values(rows ...any) *ValuesStmt {
	return &ValuesStmt{ValuesClause: ValuesClause{Rows: toRows(rows)}}
}

func (v *ValuesStmt) clone() *ValuesStmt {
	c := *v
	return &c
}

// Rows appends rows.
func (v *ValuesStmt) Rows(rows ...any) *ValuesStmt {
	c := v.clone()
	c.ValuesClause = ValuesClause{Rows: extend(v.ValuesClause.Rows, toRows(rows)...)}
	return c
}

// With appends a CTE.
func (v *ValuesStmt) With(name string, stmt Stmt) *ValuesStmt {
	return v.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (v *ValuesStmt) WithLabeled(name string, columns []string, stmt Stmt) *ValuesStmt {
	c := v.clone()
	c.WithClause = v.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (v *ValuesStmt) Recursive() *ValuesStmt {
	c := v.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (v *ValuesStmt) NoRecursive() *ValuesStmt {
	c := v.clone()
	c.WithClause.Recursive = false
	return c
}

// Limit wraps the statement in a Result carrying LIMIT n.
func (v *ValuesStmt) Limit(n uint32) *ResultStmt { return Wrap(v).Limit(n) }

// Offset wraps the statement in a Result carrying OFFSET n.
func (v *ValuesStmt) Offset(n uint32) *ResultStmt { return Wrap(v).Offset(n) }

// Union builds v UNION other.
func (v *ValuesStmt) Union(other RowSource) *BinaryStmt { return Union(v, other) }

// UnionAll builds v UNION ALL other.
func (v *ValuesStmt) UnionAll(other RowSource) *BinaryStmt { return UnionAll(v, other) }

// Except builds v EXCEPT other.
func (v *ValuesStmt) Except(other RowSource) *BinaryStmt { return Except(v, other) }

// ExceptAll builds v EXCEPT ALL other.
func (v *ValuesStmt) ExceptAll(other RowSource) *BinaryStmt { return ExceptAll(v, other) }

// Intersect builds v INTERSECT other.
func (v *ValuesStmt) Intersect(other RowSource) *BinaryStmt { return Intersect(v, other) }

// IntersectAll builds v INTERSECT ALL other.
func (v *ValuesStmt) IntersectAll(other RowSource) *BinaryStmt { return IntersectAll(v, other) }
