package query

// JoinKind identifies one of the join forms.
type JoinKind int

// Join kinds. The first four require an ON condition.
const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinNatural
	JoinNaturalLeft
	JoinNaturalRight
	JoinNaturalFull
	JoinCross
)

var joinKeywords = [...]string{
	JoinInner:        "JOIN",
	JoinLeft:         "LEFT JOIN",
	JoinRight:        "RIGHT JOIN",
	JoinFull:         "FULL JOIN",
	JoinNatural:      "NATURAL JOIN",
	JoinNaturalLeft:  "NATURAL LEFT JOIN",
	JoinNaturalRight: "NATURAL RIGHT JOIN",
	JoinNaturalFull:  "NATURAL FULL JOIN",
	JoinCross:        "CROSS JOIN",
}

// Keyword returns the SQL keyword sequence for the join.
func (k JoinKind) Keyword() string {
	if k >= 0 && int(k) < len(joinKeywords) {
		return joinKeywords[k]
	}
	return "JOIN"
}

// HasCondition reports whether the join form carries an ON condition.
func (k JoinKind) HasCondition() bool {
	return k <= JoinFull
}

// JoinExpr joins two table expressions. On is nil for natural and cross joins.
type JoinExpr struct {
	Kind  JoinKind
	Left  TableExpr
	Right TableExpr
	On    Expr
}

// SubqueryTable is a statement used as a FROM item: (stmt).
type SubqueryTable struct {
	Stmt Stmt
}

func (*JoinExpr) node()      {}
func (*SubqueryTable) node() {}

func (*JoinExpr) tableExprNode()      {}
func (*SubqueryTable) tableExprNode() {}

// SubTable wraps a statement for use as a FROM item.
func SubTable(stmt Stmt) *SubqueryTable {
	return &SubqueryTable{Stmt: stmt}
}

func joinOn(kind JoinKind, left, right, on any) *JoinExpr {
	return &JoinExpr{Kind: kind, Left: toTableExpr(left), Right: toTableExpr(right), On: toExpr(on)}
}

func joinBare(kind JoinKind, left, right any) *JoinExpr {
	return &JoinExpr{Kind: kind, Left: toTableExpr(left), Right: toTableExpr(right)}
}

// Join builds left JOIN right ON on.
func Join(left, right, on any) *JoinExpr { return joinOn(JoinInner, left, right, on) }

// LeftJoin builds left LEFT JOIN right ON on.
func LeftJoin(left, right, on any) *JoinExpr { return joinOn(JoinLeft, left, right, on) }

// RightJoin builds left RIGHT JOIN right ON on.
func RightJoin(left, right, on any) *JoinExpr { return joinOn(JoinRight, left, right, on) }

// FullJoin builds left FULL JOIN right ON on.
func FullJoin(left, right, on any) *JoinExpr { return joinOn(JoinFull, left, right, on) }

// NaturalJoin builds left NATURAL JOIN right.
func NaturalJoin(left, right any) *JoinExpr { return joinBare(JoinNatural, left, right) }

// NaturalLeftJoin builds left NATURAL LEFT JOIN right.
func NaturalLeftJoin(left, right any) *JoinExpr { return joinBare(JoinNaturalLeft, left, right) }

// NaturalRightJoin builds left NATURAL RIGHT JOIN right.
func NaturalRightJoin(left, right any) *JoinExpr { return joinBare(JoinNaturalRight, left, right) }

// NaturalFullJoin builds left NATURAL FULL JOIN right.
func NaturalFullJoin(left, right any) *JoinExpr { return joinBare(JoinNaturalFull, left, right) }

// CrossJoin builds left CROSS JOIN right.
func CrossJoin(left, right any) *JoinExpr { return joinBare(JoinCross, left, right) }
