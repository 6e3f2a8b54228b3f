package querydoc

import (
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

// Rendered is a document rendered for one dialect.
type Rendered struct {
	SQL  string `json:"sql"`
	Args []Arg  `json:"args"`
}

// Arg is one bound argument in placeholder order.
type Arg struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Render builds doc and renders it with d in the given mode. Args is empty,
// never nil, in inline mode.
func Render(doc *Document, d *dialect.Dialect, mode format.Mode) (Rendered, error) {
	stmt, err := doc.Build()
	if err != nil {
		return Rendered{}, err
	}
	out := format.Build(stmt, d, mode)

	args := make([]Arg, 0, len(out.Args))
	for _, v := range out.Args {
		args = append(args, Arg{Kind: v.Kind().String(), Value: v.Interface()})
	}
	return Rendered{SQL: out.SQL, Args: args}, nil
}
