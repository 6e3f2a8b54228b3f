package query

// UpdateStmt is an UPDATE statement.
type UpdateStmt struct {
	WithClause      WithClause
	UpdateClause    UpdateClause
	SetClause       SetClause
	FromClause      *FromClause
	WhereClause     *WhereClause
	ReturningClause *ReturningClause
}

func (*UpdateStmt) node()     {}
func (*UpdateStmt) stmtNode() {}

// Update starts an UPDATE statement.
func Update(table any) *UpdateStmt {
	return &UpdateStmt{UpdateClause: UpdateClause{Target: toTableRef(table)}}
}

func (u *UpdateStmt) clone() *UpdateStmt {
	c := *u
	return &c
}

// Set appends column = value. A Go string value is text.
func (u *UpdateStmt) Set(col, value any) *UpdateStmt {
	return u.SetAll(Set(col, value))
}

// SetAll appends assignments.
func (u *UpdateStmt) SetAll(assignments ...any) *UpdateStmt {
	c := u.clone()
	c.SetClause = SetClause{Assignments: extend(u.SetClause.Assignments, toAssignments(assignments)...)}
	return c
}

// SetValues appends every assignment the record yields.
func (u *UpdateStmt) SetValues(rec Assigner) *UpdateStmt {
	c := u.clone()
	c.SetClause = SetClause{Assignments: extend(u.SetClause.Assignments, rec.Assignments()...)}
	return c
}

// From appends UPDATE ... FROM items.
func (u *UpdateStmt) From(tables ...any) *UpdateStmt {
	c := u.clone()
	c.FromClause = extendFrom(u.FromClause, toFromItems(tables))
	return c
}

// Filter sets the WHERE condition, AND-combining with any existing one.
func (u *UpdateStmt) Filter(cond any) *UpdateStmt {
	c := u.clone()
	c.WhereClause = andWhere(u.WhereClause, toExpr(cond))
	return c
}

// Returning appends RETURNING fields.
func (u *UpdateStmt) Returning(fields ...any) *UpdateStmt {
	c := u.clone()
	c.ReturningClause = extendReturning(u.ReturningClause, toFields(fields))
	return c
}

// With appends a CTE.
func (u *UpdateStmt) With(name string, stmt Stmt) *UpdateStmt {
	return u.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (u *UpdateStmt) WithLabeled(name string, columns []string, stmt Stmt) *UpdateStmt {
	c := u.clone()
	c.WithClause = u.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (u *UpdateStmt) Recursive() *UpdateStmt {
	c := u.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (u *UpdateStmt) NoRecursive() *UpdateStmt {
	c := u.clone()
	c.WithClause.Recursive = false
	return c
}
