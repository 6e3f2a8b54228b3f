package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

func (p *Printer) formatExpr(e query.Expr) {
	switch e := e.(type) {
	case query.ColumnRef:
		p.identParts(e.Parts())
	case *query.Literal:
		p.value(e.Value)
	case *query.FuncCall:
		p.formatFuncCall(e)
	case *query.PrefixExpr:
		p.write(e.Op)
		p.space()
		p.formatExpr(e.Expr)
	case *query.InfixExpr:
		p.formatExpr(e.Left)
		p.space()
		p.write(e.Op)
		p.space()
		p.formatExpr(e.Right)
	case *query.PostfixExpr:
		p.formatExpr(e.Expr)
		p.space()
		p.write(e.Op)
	case *query.ParenExpr:
		p.write("(")
		p.formatExpr(e.Expr)
		p.write(")")
	case *query.SubqueryExpr:
		p.write("(")
		p.formatStmt(e.Stmt)
		p.write(")")
	default:
		panic(fmt.Sprintf("format: unsupported expression %T", e))
	}
}

func (p *Printer) identParts(parts []query.Ident) {
	p.formatList(len(parts), func(i int) {
		p.ident(string(parts[i]))
	}, ".")
}

// funcRef writes a function name. Function names are only quoted when they
// are not plain lowercase names, so built-ins such as count stay callable
// on backends that treat quoted names as user functions.
func (p *Printer) funcRef(f query.FuncRef) {
	parts := f.Parts()
	p.formatList(len(parts), func(i int) {
		p.write(p.dialect.QuoteIdentifierIfNeeded(string(parts[i])))
	}, ".")
}

func (p *Printer) formatFuncCall(f *query.FuncCall) {
	p.funcRef(f.Func)
	p.write("(")
	p.formatList(len(f.Args), func(i int) {
		p.formatExpr(f.Args[i])
	}, ", ")
	p.write(")")
}
