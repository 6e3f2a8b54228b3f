package querydoc

import (
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// exprCtx decides what a bare string means.
type exprCtx int

const (
	ctxColumn exprCtx = iota // column reference
	ctxValue                 // text literal
)

var binaryOps = map[string]func(l, r any) *query.InfixExpr{
	"add":   query.Add,
	"sub":   query.Sub,
	"mul":   query.Mul,
	"div":   query.Div,
	"rem":   query.Rem,
	"eq":    query.Eq,
	"ne":    query.Ne,
	"gt":    query.Gt,
	"ge":    query.Ge,
	"lt":    query.Lt,
	"le":    query.Le,
	"like":  query.Like,
	"ilike": query.ILike,
}

var chainOps = map[string]func(l, r any) *query.InfixExpr{
	"and": query.And,
	"or":  query.Or,
}

var unaryOps = map[string]func(x any) query.Expr{
	"not":     func(x any) query.Expr { return query.Not(x) },
	"is_null": func(x any) query.Expr { return query.IsNull(x) },
	"paren":   func(x any) query.Expr { return query.Paren(x) },
	"sum":     func(x any) query.Expr { return query.Sum(x) },
	"count":   func(x any) query.Expr { return query.Count(x) },
	"avg":     func(x any) query.Expr { return query.Avg(x) },
	"min":     func(x any) query.Expr { return query.Min(x) },
	"max":     func(x any) query.Expr { return query.Max(x) },
}

type pair struct {
	key   string
	value *yaml.Node
}

func pairs(node *yaml.Node) []pair {
	out := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, pair{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return out
}

func lookup(ps []pair, key string) *yaml.Node {
	for _, p := range ps {
		if p.key == key {
			return p.value
		}
	}
	return nil
}

// checkKeys rejects mapping keys outside allowed.
func checkKeys(ps []pair, path string, node *yaml.Node, allowed ...string) error {
	for _, p := range ps {
		if !slices.Contains(allowed, p.key) {
			return errorf(join(path, p.key), node, "unknown key %q", p.key)
		}
	}
	return nil
}

func splitName(s, path string, node *yaml.Node, maxParts int) ([]string, error) {
	parts := strings.Split(s, ".")
	if len(parts) > maxParts {
		return nil, errorf(path, node, "%q has too many name parts", s)
	}
	for _, p := range parts {
		if p == "" {
			return nil, errorf(path, node, "%q has an empty name part", s)
		}
	}
	return parts, nil
}

func parseColumnName(s, path string, node *yaml.Node) (query.ColumnRef, error) {
	parts, err := splitName(s, path, node, 3)
	if err != nil {
		return query.ColumnRef{}, err
	}
	switch len(parts) {
	case 1:
		return query.Column(parts[0]), nil
	case 2:
		return query.TableColumn(parts[0], parts[1]), nil
	default:
		return query.SchemaColumn(parts[0], parts[1], parts[2]), nil
	}
}

func parseTableName(s, path string, node *yaml.Node) (query.TableRef, error) {
	parts, err := splitName(s, path, node, 2)
	if err != nil {
		return query.TableRef{}, err
	}
	if len(parts) == 1 {
		return query.Table(parts[0]), nil
	}
	return query.SchemaTable(parts[0], parts[1]), nil
}

func parseFuncName(s, path string, node *yaml.Node) (query.FuncRef, error) {
	parts, err := splitName(s, path, node, 2)
	if err != nil {
		return query.FuncRef{}, err
	}
	if len(parts) == 1 {
		return query.Func(parts[0]), nil
	}
	return query.SchemaFunc(parts[0], parts[1]), nil
}

// parseExpr interprets one expression node.
func parseExpr(node *yaml.Node, path string, ctx exprCtx) (query.Expr, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return parseScalar(node, path, ctx)
	case yaml.MappingNode:
		return parseMapping(node, path)
	case yaml.AliasNode:
		return parseExpr(node.Alias, path, ctx)
	}
	return nil, errorf(path, node, "expected an expression, got a list")
}

func parseScalar(node *yaml.Node, path string, ctx exprCtx) (query.Expr, error) {
	switch node.ShortTag() {
	case "!!str":
		if ctx == ctxValue {
			return query.Text(node.Value), nil
		}
		return parseColumnName(node.Value, path, node)
	case "!!int":
		if v, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return query.Lit(v), nil
		}
		if v, err := strconv.ParseUint(node.Value, 0, 64); err == nil {
			return query.Lit(v), nil
		}
		return nil, errorf(path, node, "integer %s is out of range", node.Value)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errorf(path, node, "%v", err)
		}
		return query.Lit(b), nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, errorf(path, node, "%v", err)
		}
		return query.Lit(t), nil
	case "!!null":
		return nil, errorf(path, node, "null needs a kind, write {null: <kind>}")
	case "!!float":
		return nil, errorf(path, node, "floating point values are not supported")
	}
	return nil, errorf(path, node, "unsupported scalar %s", node.ShortTag())
}

func parseMapping(node *yaml.Node, path string) (query.Expr, error) {
	ps := pairs(node)
	if fn := lookup(ps, "call"); fn != nil {
		if err := checkKeys(ps, path, node, "call", "args"); err != nil {
			return nil, err
		}
		return parseCall(ps, path, node)
	}
	if len(ps) != 1 {
		return nil, errorf(path, node, "expression mapping must have exactly one key")
	}

	key, arg := ps[0].key, ps[0].value
	kpath := join(path, key)

	if op, ok := binaryOps[key]; ok {
		args, err := parseArgs(arg, kpath, 2, 2)
		if err != nil {
			return nil, err
		}
		return op(args[0], args[1]), nil
	}
	if op, ok := chainOps[key]; ok {
		args, err := parseArgs(arg, kpath, 2, -1)
		if err != nil {
			return nil, err
		}
		var out query.Expr = args[0]
		for _, a := range args[1:] {
			out = op(out, a)
		}
		return out, nil
	}
	if op, ok := unaryOps[key]; ok {
		x, err := parseUnaryArg(arg, kpath)
		if err != nil {
			return nil, err
		}
		return op(x), nil
	}

	switch key {
	case "binop", "preop", "postop":
		return parseGenericOp(key, arg, kpath)
	case "column":
		if arg.Kind != yaml.ScalarNode {
			return nil, errorf(kpath, arg, "column must be a name")
		}
		return parseColumnName(arg.Value, kpath, arg)
	case "null":
		kind, ok := core.ParseKind(arg.Value)
		if arg.Kind != yaml.ScalarNode || !ok {
			return nil, errorf(kpath, arg, "unknown value kind %q", arg.Value)
		}
		return query.Null(kind), nil
	case "select":
		var doc Document
		if err := decodeNode(arg, kpath, &doc); err != nil {
			return nil, err
		}
		stmt, err := doc.build(kpath)
		if err != nil {
			return nil, err
		}
		return query.SubQuery(stmt), nil
	}

	if kind, ok := core.ParseKind(key); ok {
		return parseTyped(kind, arg, kpath)
	}
	return nil, errorf(kpath, node, "unknown operator %q", key)
}

func parseArgs(node *yaml.Node, path string, minArgs, maxArgs int) ([]query.Expr, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, errorf(path, node, "expected a list of operands")
	}
	n := len(node.Content)
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		if minArgs == maxArgs {
			return nil, errorf(path, node, "expected %d operands, got %d", minArgs, n)
		}
		return nil, errorf(path, node, "expected at least %d operands, got %d", minArgs, n)
	}
	out := make([]query.Expr, n)
	for i, item := range node.Content {
		e, err := parseExpr(item, index(path, i), ctxColumn)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// parseUnaryArg accepts either the operand itself or a one-item list.
func parseUnaryArg(node *yaml.Node, path string) (query.Expr, error) {
	if node.Kind == yaml.SequenceNode {
		args, err := parseArgs(node, path, 1, 1)
		if err != nil {
			return nil, err
		}
		return args[0], nil
	}
	return parseExpr(node, path, ctxColumn)
}

func parseGenericOp(key string, node *yaml.Node, path string) (query.Expr, error) {
	want := map[string]int{"binop": 3, "preop": 2, "postop": 2}[key]
	if node.Kind != yaml.SequenceNode || len(node.Content) != want {
		return nil, errorf(path, node, "%s expects a list of %d items", key, want)
	}
	items := node.Content
	opAt := map[string]int{"binop": 1, "preop": 0, "postop": 1}[key]
	op := items[opAt]
	if op.Kind != yaml.ScalarNode || op.Value == "" {
		return nil, errorf(index(path, opAt), op, "operator must be a string")
	}

	var operands []query.Expr
	for i, item := range items {
		if i == opAt {
			continue
		}
		e, err := parseExpr(item, index(path, i), ctxColumn)
		if err != nil {
			return nil, err
		}
		operands = append(operands, e)
	}

	switch key {
	case "binop":
		return query.Binop(operands[0], op.Value, operands[1]), nil
	case "preop":
		return query.Preop(op.Value, operands[0]), nil
	default:
		return query.Postop(operands[0], op.Value), nil
	}
}

func parseCall(ps []pair, path string, node *yaml.Node) (*query.FuncCall, error) {
	name := lookup(ps, "call")
	if name.Kind != yaml.ScalarNode {
		return nil, errorf(join(path, "call"), name, "function name must be a string")
	}
	fn, err := parseFuncName(name.Value, join(path, "call"), name)
	if err != nil {
		return nil, err
	}

	var args []any
	if a := lookup(ps, "args"); a != nil {
		exprs, err := parseArgs(a, join(path, "args"), 0, -1)
		if err != nil {
			return nil, err
		}
		for _, e := range exprs {
			args = append(args, e)
		}
	}
	return query.Call(fn, args...), nil
}

func parseTyped(kind core.Kind, node *yaml.Node, path string) (query.Expr, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, errorf(path, node, "%s literal must be a scalar", kind)
	}

	var (
		v   any
		err error
	)
	switch kind {
	case core.KindBool:
		v, err = decodeAs[bool](node)
	case core.KindInt8:
		v, err = decodeAs[int8](node)
	case core.KindInt16:
		v, err = decodeAs[int16](node)
	case core.KindInt32:
		v, err = decodeAs[int32](node)
	case core.KindInt64:
		v, err = decodeAs[int64](node)
	case core.KindUint8:
		v, err = decodeAs[uint8](node)
	case core.KindUint16:
		v, err = decodeAs[uint16](node)
	case core.KindUint32:
		v, err = decodeAs[uint32](node)
	case core.KindUint64:
		v, err = decodeAs[uint64](node)
	case core.KindText:
		return query.Text(node.Value), nil
	case core.KindBytes:
		var b []byte
		b, err = hex.DecodeString(node.Value)
		if b == nil {
			b = []byte{}
		}
		v = b
	case core.KindTimestamp:
		v, err = time.Parse(time.RFC3339Nano, node.Value)
	}
	if err != nil {
		return nil, errorf(path, node, "invalid %s literal %q: %v", kind, node.Value, err)
	}
	return query.Lit(v), nil
}

func decodeAs[T any](node *yaml.Node) (T, error) {
	var v T
	err := node.Decode(&v)
	return v, err
}

// parseFields reads SELECT or RETURNING items. A mapping with an "as" key
// is an aliased field; the remaining keys form the expression.
func parseFields(nodes []yaml.Node, path string) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		fpath := index(path, i)

		if node.Kind == yaml.MappingNode {
			if alias := lookup(pairs(node), "as"); alias != nil {
				rest := *node
				rest.Content = nil
				for _, p := range pairs(node) {
					if p.key != "as" {
						rest.Content = append(rest.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.key}, p.value)
					}
				}
				e, err := parseFieldExpr(&rest, fpath)
				if err != nil {
					return nil, err
				}
				out = append(out, query.AsField(e, alias.Value))
				continue
			}
		}

		e, err := parseFieldExpr(node, fpath)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// parseFieldExpr allows {expr: x} so that a bare column can be aliased.
func parseFieldExpr(node *yaml.Node, path string) (query.Expr, error) {
	if node.Kind == yaml.MappingNode {
		ps := pairs(node)
		if e := lookup(ps, "expr"); e != nil && len(ps) == 1 {
			return parseExpr(e, join(path, "expr"), ctxColumn)
		}
	}
	return parseExpr(node, path, ctxColumn)
}

func parseExprList(nodes []yaml.Node, path string) ([]any, error) {
	out := make([]any, len(nodes))
	for i := range nodes {
		e, err := parseExpr(&nodes[i], index(path, i), ctxColumn)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func parseOrders(nodes []yaml.Node, path string) ([]any, error) {
	out := make([]any, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		opath := index(path, i)
		if node.Kind == yaml.MappingNode && len(node.Content) == 2 {
			dir := node.Content[0].Value
			if dir == "asc" || dir == "desc" {
				e, err := parseExpr(node.Content[1], join(opath, dir), ctxColumn)
				if err != nil {
					return nil, err
				}
				if dir == "asc" {
					out[i] = query.Asc(e)
				} else {
					out[i] = query.Desc(e)
				}
				continue
			}
		}
		e, err := parseExpr(node, opath, ctxColumn)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func parseRows(nodes []yaml.Node, path string) ([]any, error) {
	out := make([]any, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		rpath := index(path, i)
		if node.Kind != yaml.SequenceNode {
			return nil, errorf(rpath, node, "row must be a list of values")
		}
		exprs := make([]query.Expr, len(node.Content))
		for j, item := range node.Content {
			e, err := parseExpr(item, index(rpath, j), ctxValue)
			if err != nil {
				return nil, err
			}
			exprs[j] = e
		}
		out[i] = query.Row{Exprs: exprs}
	}
	return out, nil
}

var joinKinds = map[string]struct {
	on   func(l, r, on any) *query.JoinExpr
	bare func(l, r any) *query.JoinExpr
}{
	"":              {on: query.Join},
	"inner":         {on: query.Join},
	"left":          {on: query.LeftJoin},
	"right":         {on: query.RightJoin},
	"full":          {on: query.FullJoin},
	"natural":       {bare: query.NaturalJoin},
	"natural_left":  {bare: query.NaturalLeftJoin},
	"natural_right": {bare: query.NaturalRightJoin},
	"natural_full":  {bare: query.NaturalFullJoin},
	"cross":         {bare: query.CrossJoin},
}

// parseFrom reads FROM items: a table name, or a mapping with one source
// (table, select or call), an optional alias and joins.
func parseFrom(nodes []yaml.Node, path string) ([]any, error) {
	out := make([]any, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		ipath := index(path, i)

		if node.Kind == yaml.ScalarNode {
			t, err := parseTableName(node.Value, ipath, node)
			if err != nil {
				return nil, err
			}
			out[i] = t
			continue
		}
		if node.Kind != yaml.MappingNode {
			return nil, errorf(ipath, node, "from item must be a table name or a mapping")
		}

		ps := pairs(node)
		if err := checkKeys(ps, ipath, node, "table", "select", "call", "args", "as", "join"); err != nil {
			return nil, err
		}
		src, err := parseTableSource(ps, ipath, node)
		if err != nil {
			return nil, err
		}

		if joins := lookup(ps, "join"); joins != nil {
			if src, err = parseJoins(src, joins, join(ipath, "join")); err != nil {
				return nil, err
			}
		}

		if alias := lookup(ps, "as"); alias != nil {
			out[i] = query.AsTable(src, alias.Value)
		} else {
			out[i] = src
		}
	}
	return out, nil
}

func parseTableSource(ps []pair, path string, node *yaml.Node) (query.TableExpr, error) {
	var sources []string
	for _, k := range []string{"table", "select", "call"} {
		if lookup(ps, k) != nil {
			sources = append(sources, k)
		}
	}
	if len(sources) != 1 {
		return nil, errorf(path, node, "expected exactly one of table, select or call")
	}

	switch sources[0] {
	case "table":
		t := lookup(ps, "table")
		return parseTableName(t.Value, join(path, "table"), t)
	case "select":
		var doc Document
		if err := decodeNode(lookup(ps, "select"), join(path, "select"), &doc); err != nil {
			return nil, err
		}
		stmt, err := doc.build(join(path, "select"))
		if err != nil {
			return nil, err
		}
		return query.SubTable(stmt), nil
	default:
		return parseCall(ps, path, node)
	}
}

func parseJoins(left query.TableExpr, node *yaml.Node, path string) (query.TableExpr, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, errorf(path, node, "join must be a list")
	}
	for i, item := range node.Content {
		jpath := index(path, i)
		if item.Kind != yaml.MappingNode {
			return nil, errorf(jpath, item, "join must be a mapping")
		}
		ps := pairs(item)
		if err := checkKeys(ps, jpath, item, "kind", "table", "select", "call", "args", "on"); err != nil {
			return nil, err
		}

		kindName := ""
		if k := lookup(ps, "kind"); k != nil {
			kindName = strings.ToLower(k.Value)
		}
		kind, ok := joinKinds[kindName]
		if !ok {
			return nil, errorf(join(jpath, "kind"), item, "unknown join kind %q", kindName)
		}

		right, err := parseTableSource(ps, jpath, item)
		if err != nil {
			return nil, err
		}

		on := lookup(ps, "on")
		if kind.bare != nil {
			if on != nil {
				return nil, errorf(join(jpath, "on"), on, "%s join takes no condition", kindName)
			}
			left = kind.bare(left, right)
			continue
		}
		if on == nil {
			return nil, errorf(jpath, item, "join requires on")
		}
		cond, err := parseExpr(on, join(jpath, "on"), ctxColumn)
		if err != nil {
			return nil, err
		}
		left = kind.on(left, right, cond)
	}
	return left, nil
}
