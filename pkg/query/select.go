package query

// SelectStmt is a SELECT statement.
type SelectStmt struct {
	WithClause    WithClause
	SelectClause  SelectClause
	FromClause    *FromClause
	WhereClause   *WhereClause
	GroupByClause *GroupByClause
	HavingClause  *HavingClause
	OrderByClause *OrderByClause
}

func (*SelectStmt) node()      {}
func (*SelectStmt) stmtNode()  {}
func (*SelectStmt) rowSource() {}
func (*SelectStmt) dataNode()  {}

// Select starts a SELECT statement with the given fields.
func Select(fields ...any) *SelectStmt {
	return &SelectStmt{SelectClause: SelectClause{Fields: toFields(fields)}}
}

// SelectFrom selects every column of a schema from its table.
func SelectFrom(s Schema) *SelectStmt {
	return Select(s.Columns()).From(s.Table())
}

func (s *SelectStmt) clone() *SelectStmt {
	c := *s
	return &c
}

// With appends a CTE.
func (s *SelectStmt) With(name string, stmt Stmt) *SelectStmt {
	return s.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (s *SelectStmt) WithLabeled(name string, columns []string, stmt Stmt) *SelectStmt {
	c := s.clone()
	c.WithClause = s.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (s *SelectStmt) Recursive() *SelectStmt {
	c := s.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (s *SelectStmt) NoRecursive() *SelectStmt {
	c := s.clone()
	c.WithClause.Recursive = false
	return c
}

// Select appends fields to the SELECT list.
func (s *SelectStmt) Select(fields ...any) *SelectStmt {
	c := s.clone()
	c.SelectClause = SelectClause{Fields: extend(s.SelectClause.Fields, toFields(fields)...)}
	return c
}

// From appends FROM items.
func (s *SelectStmt) From(tables ...any) *SelectStmt {
	c := s.clone()
	c.FromClause = extendFrom(s.FromClause, toFromItems(tables))
	return c
}

// Filter sets the WHERE condition, AND-combining with any existing one.
func (s *SelectStmt) Filter(cond any) *SelectStmt {
	c := s.clone()
	c.WhereClause = andWhere(s.WhereClause, toExpr(cond))
	return c
}

// GroupBy appends GROUP BY expressions.
func (s *SelectStmt) GroupBy(exprs ...any) *SelectStmt {
	c := s.clone()
	if s.GroupByClause == nil {
		c.GroupByClause = &GroupByClause{Exprs: toExprs(exprs)}
	} else {
		c.GroupByClause = &GroupByClause{Exprs: extend(s.GroupByClause.Exprs, toExprs(exprs)...)}
	}
	return c
}

// Having sets the HAVING condition, AND-combining with any existing one.
func (s *SelectStmt) Having(cond any) *SelectStmt {
	c := s.clone()
	c.HavingClause = andHaving(s.HavingClause, toExpr(cond))
	return c
}

// OrderBy appends ORDER BY entries.
func (s *SelectStmt) OrderBy(orders ...any) *SelectStmt {
	c := s.clone()
	if s.OrderByClause == nil {
		c.OrderByClause = &OrderByClause{Orders: toOrders(orders)}
	} else {
		c.OrderByClause = &OrderByClause{Orders: extend(s.OrderByClause.Orders, toOrders(orders)...)}
	}
	return c
}

// Limit wraps the statement in a Result carrying LIMIT n.
func (s *SelectStmt) Limit(n uint32) *ResultStmt { return Wrap(s).Limit(n) }

// Offset wraps the statement in a Result carrying OFFSET n.
func (s *SelectStmt) Offset(n uint32) *ResultStmt { return Wrap(s).Offset(n) }

// Union builds s UNION other.
func (s *SelectStmt) Union(other RowSource) *BinaryStmt { return Union(s, other) }

// UnionAll builds s UNION ALL other.
func (s *SelectStmt) UnionAll(other RowSource) *BinaryStmt { return UnionAll(s, other) }

// Except builds s EXCEPT other.
func (s *SelectStmt) Except(other RowSource) *BinaryStmt { return Except(s, other) }

// ExceptAll builds s EXCEPT ALL other.
func (s *SelectStmt) ExceptAll(other RowSource) *BinaryStmt { return ExceptAll(s, other) }

// Intersect builds s INTERSECT other.
func (s *SelectStmt) Intersect(other RowSource) *BinaryStmt { return Intersect(s, other) }

// IntersectAll builds s INTERSECT ALL other.
func (s *SelectStmt) IntersectAll(other RowSource) *BinaryStmt { return IntersectAll(s, other) }
