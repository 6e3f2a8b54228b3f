package query

// Node is implemented by every tree type the renderer accepts.
type Node interface {
	node()
}

// Expr is a scalar expression.
type Expr interface {
	Node
	exprNode()
}

// TableExpr is anything that can appear as a FROM item.
type TableExpr interface {
	Node
	tableExprNode()
}

// Clause is a single SQL clause.
type Clause interface {
	Node
	clauseNode()
}

// Stmt is the closed set of statements:
// *SelectStmt, *InsertStmt, *UpdateStmt, *DeleteStmt, *ValuesStmt,
// *BinaryStmt and *ResultStmt.
type Stmt interface {
	Node
	stmtNode()
}

// RowSource is a statement that produces rows and may be an operand of a
// set operation: *SelectStmt, *ValuesStmt, *BinaryStmt and *ResultStmt.
type RowSource interface {
	Stmt
	rowSource()
}

// Data is a row-producing statement that can be wrapped by LIMIT/OFFSET or
// feed an INSERT: *SelectStmt, *ValuesStmt and *BinaryStmt.
type Data interface {
	RowSource
	dataNode()
}
