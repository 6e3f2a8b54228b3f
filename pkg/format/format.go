package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// Mode selects how literal values are emitted.
type Mode int

const (
	// ModeInline writes values as SQL literals. Used for display and logs.
	ModeInline Mode = iota
	// ModeParams writes placeholders and collects the values as args.
	ModeParams
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeParams {
		return "params"
	}
	return "inline"
}

// ParseMode parses "inline" or "params".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "inline":
		return ModeInline, nil
	case "params":
		return ModeParams, nil
	}
	return ModeInline, fmt.Errorf("unknown render mode %q (want inline or params)", s)
}

// Output is rendered SQL plus its bound arguments, in placeholder order.
// Args is nil in ModeInline.
type Output struct {
	SQL  string
	Args []core.Value
}

// Build renders any node of a query tree. A nil dialect means dialect.Default().
func Build(node query.Node, d *dialect.Dialect, mode Mode) Output {
	if d == nil {
		d = dialect.Default()
	}
	p := newPrinter(d, mode)
	p.formatNode(node)
	return Output{SQL: p.String(), Args: p.args}
}

// Inline renders node with every value written as a literal.
func Inline(node query.Node, d *dialect.Dialect) string {
	return Build(node, d, ModeInline).SQL
}

// String renders node inline with the default dialect.
func String(node query.Node) string {
	return Inline(node, nil)
}

// Compile renders node with placeholders. The number of placeholders in
// the returned text always equals len(args).
func Compile(node query.Node, d *dialect.Dialect) (string, []core.Value) {
	out := Build(node, d, ModeParams)
	return out.SQL, out.Args
}
