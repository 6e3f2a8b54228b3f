package querydoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

// fieldsByKind lists the document keys each kind accepts beyond kind, with,
// and recursive.
var fieldsByKind = map[string][]string{
	KindSelect: {"fields", "from", "where", "group_by", "having", "order_by", "limit", "offset", "set operations"},
	KindValues: {"values", "limit", "offset", "set operations"},
	KindInsert: {"table", "columns", "values", "source", "returning"},
	KindUpdate: {"table", "set", "from", "where", "returning"},
	KindDelete: {"table", "where", "returning"},
}

// Build interprets the document as a statement tree.
func (d *Document) Build() (query.Stmt, error) {
	return d.build("")
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func index(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

func (d *Document) kind() string {
	if d.Kind == "" {
		return KindSelect
	}
	return strings.ToLower(d.Kind)
}

func (d *Document) build(path string) (query.Stmt, error) {
	kind := d.kind()
	allowed, ok := fieldsByKind[kind]
	if !ok {
		return nil, errorf(join(path, "kind"), nil, "unknown kind %q (want select, insert, update, delete or values)", d.Kind)
	}
	if err := d.checkFields(path, kind, allowed); err != nil {
		return nil, err
	}

	var (
		stmt query.Stmt
		err  error
	)
	switch kind {
	case KindSelect:
		stmt, err = d.buildSelect(path)
	case KindValues:
		stmt, err = d.buildValues(path)
	case KindInsert:
		stmt, err = d.buildInsert(path)
	case KindUpdate:
		stmt, err = d.buildUpdate(path)
	case KindDelete:
		stmt, err = d.buildDelete(path)
	}
	if err != nil {
		return nil, err
	}

	if data, ok := stmt.(query.Data); ok {
		if stmt, err = d.applySetOps(path, data); err != nil {
			return nil, err
		}
		stmt = d.applyLimit(stmt.(query.RowSource))
	}
	return d.applyWith(path, stmt)
}

// present reports which document keys are set.
func (d *Document) present() map[string]bool {
	return map[string]bool{
		"fields":         len(d.Fields) > 0,
		"from":           len(d.From) > 0,
		"where":          !isZero(&d.Where),
		"group_by":       len(d.GroupBy) > 0,
		"having":         !isZero(&d.Having),
		"order_by":       len(d.OrderBy) > 0,
		"limit":          d.Limit != nil,
		"offset":         d.Offset != nil,
		"table":          d.Table != "",
		"columns":        len(d.Columns) > 0,
		"values":         len(d.Values) > 0,
		"source":         d.Source != nil,
		"set":            !isZero(&d.Set),
		"returning":      len(d.Returning) > 0,
		"set operations": len(d.setOps()) > 0,
	}
}

func (d *Document) checkFields(path, kind string, allowed []string) error {
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}
	present := d.present()
	// Stable order for error messages.
	for _, key := range []string{"fields", "from", "where", "group_by", "having", "order_by", "limit", "offset",
		"table", "columns", "values", "source", "set", "returning", "set operations"} {
		if present[key] && !ok[key] {
			return errorf(join(path, strings.ReplaceAll(key, " ", "_")), nil, "%s is not valid for kind %q", key, kind)
		}
	}
	return nil
}

func isZero(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (d *Document) buildSelect(path string) (query.Stmt, error) {
	fields, err := parseFields(d.Fields, join(path, "fields"))
	if err != nil {
		return nil, err
	}
	stmt := query.Select(fields...)

	from, err := parseFrom(d.From, join(path, "from"))
	if err != nil {
		return nil, err
	}
	if len(from) > 0 {
		stmt = stmt.From(from...)
	}

	if !isZero(&d.Where) {
		cond, err := parseExpr(&d.Where, join(path, "where"), ctxColumn)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Filter(cond)
	}

	if len(d.GroupBy) > 0 {
		exprs, err := parseExprList(d.GroupBy, join(path, "group_by"))
		if err != nil {
			return nil, err
		}
		stmt = stmt.GroupBy(exprs...)
	}

	if !isZero(&d.Having) {
		cond, err := parseExpr(&d.Having, join(path, "having"), ctxColumn)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Having(cond)
	}

	if len(d.OrderBy) > 0 {
		orders, err := parseOrders(d.OrderBy, join(path, "order_by"))
		if err != nil {
			return nil, err
		}
		stmt = stmt.OrderBy(orders...)
	}
	return stmt, nil
}

func (d *Document) buildValues(path string) (query.Stmt, error) {
	rows, err := parseRows(d.Values, join(path, "values"))
	if err != nil {
		return nil, err
	}
	return query.Values(rows...), nil
}

func (d *Document) buildInsert(path string) (query.Stmt, error) {
	table, err := requireTable(d.Table, path)
	if err != nil {
		return nil, err
	}
	cols := make([]any, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = c
	}
	stmt := query.Insert(table, cols...)

	switch {
	case d.Source != nil && len(d.Values) > 0:
		return nil, errorf(join(path, "source"), nil, "source and values are mutually exclusive")
	case d.Source != nil:
		src, err := d.Source.build(join(path, "source"))
		if err != nil {
			return nil, err
		}
		data, ok := src.(query.Data)
		if !ok {
			return nil, errorf(join(path, "source"), nil, "source must be a select, values or set operation without limit or offset")
		}
		stmt = stmt.Select(data)
	default:
		rows, err := parseRows(d.Values, join(path, "values"))
		if err != nil {
			return nil, err
		}
		stmt = stmt.Values(rows...)
	}

	fields, err := parseFields(d.Returning, join(path, "returning"))
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		stmt = stmt.Returning(fields...)
	}
	return stmt, nil
}

func (d *Document) buildUpdate(path string) (query.Stmt, error) {
	table, err := requireTable(d.Table, path)
	if err != nil {
		return nil, err
	}
	stmt := query.Update(table)

	if d.Set.Kind != yaml.MappingNode {
		return nil, errorf(join(path, "set"), &d.Set, "set must be a mapping of column to value")
	}
	for i := 0; i+1 < len(d.Set.Content); i += 2 {
		col, val := d.Set.Content[i], d.Set.Content[i+1]
		v, err := parseExpr(val, join(path, "set."+col.Value), ctxValue)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Set(query.Ident(col.Value), v)
	}

	from, err := parseFrom(d.From, join(path, "from"))
	if err != nil {
		return nil, err
	}
	if len(from) > 0 {
		stmt = stmt.From(from...)
	}

	if !isZero(&d.Where) {
		cond, err := parseExpr(&d.Where, join(path, "where"), ctxColumn)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Filter(cond)
	}

	fields, err := parseFields(d.Returning, join(path, "returning"))
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		stmt = stmt.Returning(fields...)
	}
	return stmt, nil
}

func (d *Document) buildDelete(path string) (query.Stmt, error) {
	table, err := requireTable(d.Table, path)
	if err != nil {
		return nil, err
	}
	stmt := query.Delete(table)

	if !isZero(&d.Where) {
		cond, err := parseExpr(&d.Where, join(path, "where"), ctxColumn)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Filter(cond)
	}

	fields, err := parseFields(d.Returning, join(path, "returning"))
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		stmt = stmt.Returning(fields...)
	}
	return stmt, nil
}

func requireTable(name, path string) (query.TableRef, error) {
	if name == "" {
		return query.TableRef{}, errorf(join(path, "table"), nil, "table is required")
	}
	return parseTableName(name, join(path, "table"), nil)
}

type setOp struct {
	key   string
	doc   *Document
	apply func(l, r query.RowSource) *query.BinaryStmt
}

func (d *Document) setOps() []setOp {
	all := []setOp{
		{"union", d.Union, func(l, r query.RowSource) *query.BinaryStmt { return query.Union(l, r) }},
		{"union_all", d.UnionAll, func(l, r query.RowSource) *query.BinaryStmt { return query.UnionAll(l, r) }},
		{"except", d.Except, func(l, r query.RowSource) *query.BinaryStmt { return query.Except(l, r) }},
		{"except_all", d.ExceptAll, func(l, r query.RowSource) *query.BinaryStmt { return query.ExceptAll(l, r) }},
		{"intersect", d.Intersect, func(l, r query.RowSource) *query.BinaryStmt { return query.Intersect(l, r) }},
		{"intersect_all", d.IntersectAll, func(l, r query.RowSource) *query.BinaryStmt { return query.IntersectAll(l, r) }},
	}
	var out []setOp
	for _, op := range all {
		if op.doc != nil {
			out = append(out, op)
		}
	}
	return out
}

// applySetOps folds the set operations left to right in key order.
func (d *Document) applySetOps(path string, left query.Data) (query.Stmt, error) {
	var stmt query.RowSource = left
	for _, op := range d.setOps() {
		right, err := op.doc.build(join(path, op.key))
		if err != nil {
			return nil, err
		}
		rs, ok := right.(query.RowSource)
		if !ok {
			return nil, errorf(join(path, op.key), nil, "operand of %s must produce rows", op.key)
		}
		stmt = op.apply(stmt, rs)
	}
	return stmt, nil
}

func (d *Document) applyLimit(stmt query.RowSource) query.Stmt {
	if d.Limit == nil && d.Offset == nil {
		return stmt
	}
	var res *query.ResultStmt
	switch s := stmt.(type) {
	case *query.ResultStmt:
		res = s
	case query.Data:
		res = query.Wrap(s)
	}
	if d.Limit != nil {
		res = res.Limit(*d.Limit)
	}
	if d.Offset != nil {
		res = res.Offset(*d.Offset)
	}
	return res
}

func (d *Document) applyWith(path string, stmt query.Stmt) (query.Stmt, error) {
	for i := range d.With {
		cte := &d.With[i]
		cpath := index(join(path, "with"), i)
		if cte.Name == "" {
			return nil, errorf(join(cpath, "name"), nil, "name is required")
		}
		sub, err := cte.Query.build(join(cpath, "query"))
		if err != nil {
			return nil, err
		}
		stmt = withCTE(stmt, cte.Name, cte.Columns, sub)
	}
	if d.Recursive {
		stmt = recursive(stmt)
	}
	return stmt, nil
}

func withCTE(stmt query.Stmt, name string, cols []string, sub query.Stmt) query.Stmt {
	switch s := stmt.(type) {
	case *query.SelectStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.ValuesStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.BinaryStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.ResultStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.InsertStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.UpdateStmt:
		return s.WithLabeled(name, cols, sub)
	case *query.DeleteStmt:
		return s.WithLabeled(name, cols, sub)
	}
	return stmt
}

func recursive(stmt query.Stmt) query.Stmt {
	switch s := stmt.(type) {
	case *query.SelectStmt:
		return s.Recursive()
	case *query.ValuesStmt:
		return s.Recursive()
	case *query.BinaryStmt:
		return s.Recursive()
	case *query.ResultStmt:
		return s.Recursive()
	case *query.InsertStmt:
		return s.Recursive()
	case *query.UpdateStmt:
		return s.Recursive()
	case *query.DeleteStmt:
		return s.Recursive()
	}
	return stmt
}
