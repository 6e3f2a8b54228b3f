package query

// SetOp is a set operator token.
type SetOp string

// Set operators.
const (
	SetOpUnion        SetOp = "UNION"
	SetOpUnionAll     SetOp = "UNION ALL"
	SetOpExcept       SetOp = "EXCEPT"
	SetOpExceptAll    SetOp = "EXCEPT ALL"
	SetOpIntersect    SetOp = "INTERSECT"
	SetOpIntersectAll SetOp = "INTERSECT ALL"
)

// BinaryStmt combines two row sources with a set operator.
type BinaryStmt struct {
	WithClause WithClause
	Left       RowSource
	Op         SetOp
	Right      RowSource
}

func (*BinaryStmt) node()      {}
func (*BinaryStmt) stmtNode()  {}
func (*BinaryStmt) rowSource() {}
func (*BinaryStmt) dataNode()  {}

func binary(left RowSource, op SetOp, right RowSource) *BinaryStmt {
	return &BinaryStmt{Left: left, Op: op, Right: right}
}

// Union builds left UNION right.
func Union(left, right RowSource) *BinaryStmt { return binary(left, SetOpUnion, right) }

// UnionAll builds left UNION ALL right.
func UnionAll(left, right RowSource) *BinaryStmt { return binary(left, SetOpUnionAll, right) }

// Except builds left EXCEPT right.
func Except(left, right RowSource) *BinaryStmt { return binary(left, SetOpExcept, right) }

// ExceptAll builds left EXCEPT ALL right.
func ExceptAll(left, right RowSource) *BinaryStmt { return binary(left, SetOpExceptAll, right) }

// Intersect builds left INTERSECT right.
func Intersect(left, right RowSource) *BinaryStmt { return binary(left, SetOpIntersect, right) }

// IntersectAll builds left INTERSECT ALL right.
func IntersectAll(left, right RowSource) *BinaryStmt {
	return binary(left, SetOpIntersectAll, right)
}

func (b *BinaryStmt) clone() *BinaryStmt {
	c := *b
	return &c
}

// With appends a CTE to the set operation's own WITH clause.
func (b *BinaryStmt) With(name string, stmt Stmt) *BinaryStmt {
	return b.WithLabeled(name, nil, stmt)
}

// WithLabeled appends a CTE with column labels.
func (b *BinaryStmt) WithLabeled(name string, columns []string, stmt Stmt) *BinaryStmt {
	c := b.clone()
	c.WithClause = b.WithClause.with(newCte(name, columns, stmt))
	return c
}

// Recursive marks the WITH clause RECURSIVE.
func (b *BinaryStmt) Recursive() *BinaryStmt {
	c := b.clone()
	c.WithClause.Recursive = true
	return c
}

// NoRecursive clears the RECURSIVE flag.
func (b *BinaryStmt) NoRecursive() *BinaryStmt {
	c := b.clone()
	c.WithClause.Recursive = false
	return c
}

// Limit wraps the statement in a Result carrying LIMIT n.
func (b *BinaryStmt) Limit(n uint32) *ResultStmt { return Wrap(b).Limit(n) }

// Offset wraps the statement in a Result carrying OFFSET n.
func (b *BinaryStmt) Offset(n uint32) *ResultStmt { return Wrap(b).Offset(n) }

// Union builds b UNION other.
func (b *BinaryStmt) Union(other RowSource) *BinaryStmt { return Union(b, other) }

// UnionAll builds b UNION ALL other.
func (b *BinaryStmt) UnionAll(other RowSource) *BinaryStmt { return UnionAll(b, other) }

// Except builds b EXCEPT other.
func (b *BinaryStmt) Except(other RowSource) *BinaryStmt { return Except(b, other) }

// ExceptAll builds b EXCEPT ALL other.
func (b *BinaryStmt) ExceptAll(other RowSource) *BinaryStmt { return ExceptAll(b, other) }

// Intersect builds b INTERSECT other.
func (b *BinaryStmt) Intersect(other RowSource) *BinaryStmt { return Intersect(b, other) }

// IntersectAll builds b INTERSECT ALL other.
func (b *BinaryStmt) IntersectAll(other RowSource) *BinaryStmt { return IntersectAll(b, other) }
