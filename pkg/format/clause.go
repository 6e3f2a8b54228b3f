package format

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

func (p *Printer) formatClause(c query.Clause) {
	switch c := c.(type) {
	case query.SelectClause:
		p.keyword("SELECT", len(c.Fields))
		p.fieldList(c.Fields)
	case query.FromClause:
		p.keyword("FROM", len(c.Tables))
		p.formatList(len(c.Tables), func(i int) {
			p.formatFromItem(c.Tables[i])
		}, ", ")
	case query.WhereClause:
		p.write("WHERE ")
		p.formatExpr(c.Cond)
	case query.GroupByClause:
		p.keyword("GROUP BY", len(c.Exprs))
		p.formatList(len(c.Exprs), func(i int) {
			p.formatExpr(c.Exprs[i])
		}, ", ")
	case query.HavingClause:
		p.write("HAVING ")
		p.formatExpr(c.Cond)
	case query.OrderByClause:
		p.keyword("ORDER BY", len(c.Orders))
		p.formatList(len(c.Orders), func(i int) {
			p.formatOrder(c.Orders[i])
		}, ", ")
	case query.InsertClause:
		p.write("INSERT INTO ")
		p.identParts(c.Target.Parts())
		if len(c.Columns) > 0 {
			p.write("(")
			p.identList(c.Columns)
			p.write(")")
		}
	case query.ValuesClause:
		p.keyword("VALUES", len(c.Rows))
		p.formatList(len(c.Rows), func(i int) {
			p.formatRow(c.Rows[i])
		}, ", ")
	case query.ReturningClause:
		p.keyword("RETURNING", len(c.Fields))
		p.fieldList(c.Fields)
	case query.UpdateClause:
		p.write("UPDATE ")
		p.identParts(c.Target.Parts())
	case query.DeleteClause:
		p.write("DELETE FROM ")
		p.identParts(c.Target.Parts())
	case query.SetClause:
		p.keyword("SET", len(c.Assignments))
		p.formatList(len(c.Assignments), func(i int) {
			p.formatAssignment(c.Assignments[i])
		}, ", ")
	case query.WithClause:
		if c.Recursive {
			p.keyword("WITH RECURSIVE", len(c.CTEs))
		} else {
			p.keyword("WITH", len(c.CTEs))
		}
		p.formatList(len(c.CTEs), func(i int) {
			p.formatCte(c.CTEs[i])
		}, ", ")
	case query.LimitClause:
		// Counts are part of the statement shape and never bound.
		p.write("LIMIT ")
		p.write(strconv.FormatUint(uint64(c.Count), 10))
	case query.OffsetClause:
		p.write("OFFSET ")
		p.write(strconv.FormatUint(uint64(c.Count), 10))

	// Statements hold optional clauses by pointer.
	case *query.FromClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.WhereClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.GroupByClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.HavingClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.OrderByClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.ReturningClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.LimitClause:
		if c != nil {
			p.formatClause(*c)
		}
	case *query.OffsetClause:
		if c != nil {
			p.formatClause(*c)
		}
	default:
		panic(fmt.Sprintf("format: unsupported clause %T", c))
	}
}

func (p *Printer) fieldList(fields []query.Field) {
	p.formatList(len(fields), func(i int) {
		p.formatField(fields[i])
	}, ", ")
}
