package query

// InsertStmt is an INSERT statement. Source is a *ValuesStmt for
// INSERT ... VALUES, or a *SelectStmt / *BinaryStmt for INSERT ... SELECT.
type InsertStmt struct {
	WithClause      WithClause
	InsertClause    InsertClause
	Source          Data
	ReturningClause *ReturningClause
}

func (*InsertStmt) node()     {}
func (*InsertStmt) stmtNode() {}

// Insert starts an INSERT INTO table(columns) statement with an empty
// VALUES source. Columns may be names or ColumnRefs; qualifiers are dropped.
func Insert(table any, columns ...any) *InsertStmt {
	return &InsertStmt{
		InsertClause: InsertClause{Target: toTableRef(table), Columns: toIdents(columns)},
		Source:       &ValuesStmt{},
	}
}

// InsertInto starts an INSERT for every column of a schema.
func InsertInto(s Schema) *InsertStmt {
	return Insert(s.Table(), s.Columns())
}

func (i *InsertStmt) clone() *InsertStmt {
	c := *i
	return &c
}

// Values appends rows. When the source is currently a SELECT or set
// operation, it is replaced by a VALUES list holding only these rows: the
// source always reflects the latest Values or Select call.
func (i *InsertStmt) Values(rows ...any) *InsertStmt {
	c := i.clone()
	if vals, ok := i.Source.(*ValuesStmt); ok {
		c.Source = vals.Rows(rows...)
	} else {
		c.Source = Values(rows...)
	}
	return c
}

// Select switches the source to a row-producing statement.
func (i *InsertStmt) Select(src Data) *InsertStmt {
	c := i.clone()
	c.Source = src
	return c
}

// Returning appends RETURNING fields.
func (i *InsertStmt) Returning(fields ...any) *InsertStmt {
	c := i.clone()
	c.ReturningClause = extendReturning(i.ReturningClause, toFields(fields))
	return c
}

// With appends a CTE.
func (i *InsertStmt) With(name string, stmt Stmt) *InsertStmt {
	return i.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (i *InsertStmt) WithLabeled(name string, columns []string, stmt Stmt) *InsertStmt {
	c := i.clone()
	c.WithClause = i.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (i *InsertStmt) Recursive() *InsertStmt {
	c := i.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (i *InsertStmt) NoRecursive() *InsertStmt {
	c := i.clone()
	c.WithClause.Recursive = false
	return c
}
