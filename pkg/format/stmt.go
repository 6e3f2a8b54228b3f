package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

func (p *Printer) formatStmt(s query.Stmt) {
	switch s := s.(type) {
	case *query.SelectStmt:
		p.formatSelectStmt(s)
	case *query.InsertStmt:
		p.formatInsertStmt(s)
	case *query.UpdateStmt:
		p.formatUpdateStmt(s)
	case *query.DeleteStmt:
		p.formatDeleteStmt(s)
	case *query.ValuesStmt:
		p.formatValuesStmt(s)
	case *query.BinaryStmt:
		p.formatBinaryStmt(s)
	case *query.ResultStmt:
		p.formatResultStmt(s)
	default:
		panic(fmt.Sprintf("format: unsupported statement %T", s))
	}
}

// formatWith writes the WITH clause and its trailing space. An empty WITH
// writes nothing, whatever its RECURSIVE flag.
func (p *Printer) formatWith(w query.WithClause) {
	if w.IsEmpty() {
		return
	}
	p.formatClause(w)
	p.space()
}

// clause writes " c" when c is present. c is a typed pointer that may be nil.
func (p *Printer) clause(present bool, c query.Clause) {
	if !present {
		return
	}
	p.space()
	p.formatClause(c)
}

func (p *Printer) formatSelectStmt(s *query.SelectStmt) {
	p.formatWith(s.WithClause)
	p.formatClause(s.SelectClause)
	p.clause(s.FromClause != nil, s.FromClause)
	p.clause(s.WhereClause != nil, s.WhereClause)
	p.clause(s.GroupByClause != nil, s.GroupByClause)
	p.clause(s.HavingClause != nil, s.HavingClause)
	p.clause(s.OrderByClause != nil, s.OrderByClause)
}

func (p *Printer) formatInsertStmt(s *query.InsertStmt) {
	p.formatWith(s.WithClause)
	p.formatClause(s.InsertClause)
	p.space()
	if vals, ok := s.Source.(*query.ValuesStmt); ok && vals.WithClause.IsEmpty() && len(vals.ValuesClause.Rows) == 0 {
		p.write("DEFAULT VALUES")
	} else {
		p.formatStmt(s.Source)
	}
	p.clause(s.ReturningClause != nil, s.ReturningClause)
}

func (p *Printer) formatUpdateStmt(s *query.UpdateStmt) {
	p.formatWith(s.WithClause)
	p.formatClause(s.UpdateClause)
	p.space()
	p.formatClause(s.SetClause)
	p.clause(s.FromClause != nil, s.FromClause)
	p.clause(s.WhereClause != nil, s.WhereClause)
	p.clause(s.ReturningClause != nil, s.ReturningClause)
}

func (p *Printer) formatDeleteStmt(s *query.DeleteStmt) {
	p.formatWith(s.WithClause)
	p.formatClause(s.DeleteClause)
	p.clause(s.WhereClause != nil, s.WhereClause)
	p.clause(s.ReturningClause != nil, s.ReturningClause)
}

func (p *Printer) formatValuesStmt(s *query.ValuesStmt) {
	p.formatWith(s.WithClause)
	p.formatClause(s.ValuesClause)
}

func (p *Printer) formatBinaryStmt(s *query.BinaryStmt) {
	p.formatWith(s.WithClause)
	p.formatStmt(s.Left)
	p.space()
	p.write(string(s.Op))
	p.space()
	p.formatStmt(s.Right)
}

func (p *Printer) formatResultStmt(s *query.ResultStmt) {
	p.formatWith(s.WithClause)
	p.formatStmt(s.Data)
	p.clause(s.LimitClause != nil, s.LimitClause)
	p.clause(s.OffsetClause != nil, s.OffsetClause)
}
