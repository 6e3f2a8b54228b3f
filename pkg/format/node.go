package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

// formatNode dispatches on the node family. Every query type is covered;
// an unknown type is a programming error.
func (p *Printer) formatNode(n query.Node) {
	switch n := n.(type) {
	case nil:
		return
	case query.Stmt:
		p.formatStmt(n)
	case query.Expr:
		p.formatExpr(n)
	case query.TableExpr:
		p.formatTableExpr(n)
	case query.Clause:
		p.formatClause(n)
	case query.Ident:
		p.ident(string(n))
	case query.FuncRef:
		p.funcRef(n)
	case query.Field:
		p.formatField(n)
	case query.FromItem:
		p.formatFromItem(n)
	case query.Row:
		p.formatRow(n)
	case query.Order:
		p.formatOrder(n)
	case query.Cte:
		p.formatCte(n)
	case query.Assignment:
		p.formatAssignment(n)
	default:
		panic(fmt.Sprintf("format: unsupported node %T", n))
	}
}
