package query

// DeleteStmt is a DELETE statement.
type DeleteStmt struct {
	WithClause      WithClause
	DeleteClause    DeleteClause
	WhereClause     *WhereClause
	ReturningClause *ReturningClause
}

func (*DeleteStmt) node()     {}
func (*DeleteStmt) stmtNode() {}

// Delete starts a DELETE FROM table statement.
func Delete(table any) *DeleteStmt {
	return &DeleteStmt{DeleteClause: DeleteClause{Target: toTableRef(table)}}
}

func (d *DeleteStmt) clone() *DeleteStmt {
	c := *d
	return &c
}

// Filter sets the WHERE condition, AND-combining with any existing one.
func (d *DeleteStmt) Filter(cond any) *DeleteStmt {
	c := d.clone()
	c.WhereClause = andWhere(d.WhereClause, toExpr(cond))
	return c
}

// Returning appends RETURNING fields.
func (d *DeleteStmt) Returning(fields ...any) *DeleteStmt {
	c := d.clone()
	c.ReturningClause = extendReturning(d.ReturningClause, toFields(fields))
	return c
}

// With appends a CTE.
func (d *DeleteStmt) With(name string, stmt Stmt) *DeleteStmt {
	return d.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (d *DeleteStmt) WithLabeled(name string, columns []string, stmt Stmt) *DeleteStmt {
	c := d.clone()
	c.WithClause = d.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (d *DeleteStmt) Recursive() *DeleteStmt {
	c := d.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (d *DeleteStmt) NoRecursive() *DeleteStmt {
	c := d.clone()
	c.WithClause.Recursive = false
	return c
}
