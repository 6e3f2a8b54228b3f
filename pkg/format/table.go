package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

func (p *Printer) formatTableExpr(t query.TableExpr) {
	switch t := t.(type) {
	case query.TableRef:
		p.identParts(t.Parts())
	case *query.FuncCall:
		p.formatFuncCall(t)
	case *query.JoinExpr:
		p.formatTableExpr(t.Left)
		p.space()
		p.write(t.Kind.Keyword())
		p.space()
		p.formatTableExpr(t.Right)
		if t.Kind.HasCondition() && t.On != nil {
			p.write(" ON ")
			p.formatExpr(t.On)
		}
	case *query.SubqueryTable:
		p.write("(")
		p.formatStmt(t.Stmt)
		p.write(")")
	default:
		panic(fmt.Sprintf("format: unsupported table expression %T", t))
	}
}

// ---------- List items ----------

func (p *Printer) formatField(f query.Field) {
	p.formatExpr(f.Expr)
	p.alias(f.Alias)
}

func (p *Printer) formatFromItem(f query.FromItem) {
	p.formatTableExpr(f.Source)
	p.alias(f.Alias)
}

func (p *Printer) alias(a query.Ident) {
	if a == "" {
		return
	}
	p.write(" AS ")
	p.ident(string(a))
}

func (p *Printer) formatRow(r query.Row) {
	p.write("(")
	p.formatList(len(r.Exprs), func(i int) {
		p.formatExpr(r.Exprs[i])
	}, ", ")
	p.write(")")
}

func (p *Printer) formatOrder(o query.Order) {
	p.formatExpr(o.Expr)
	switch o.Sort {
	case query.SortAsc:
		p.write(" ASC")
	case query.SortDesc:
		p.write(" DESC")
	}
}

func (p *Printer) formatCte(c query.Cte) {
	p.ident(string(c.Name))
	if len(c.Columns) > 0 {
		p.write("(")
		p.identList(c.Columns)
		p.write(")")
	}
	p.write(" AS (")
	p.formatStmt(c.Stmt)
	p.write(")")
}

func (p *Printer) formatAssignment(a query.Assignment) {
	p.ident(string(a.Column))
	p.write(" = ")
	p.formatExpr(a.Value)
}

func (p *Printer) identList(ids []query.Ident) {
	p.formatList(len(ids), func(i int) {
		p.ident(string(ids[i]))
	}, ", ")
}
