// Package querydoc reads declarative query documents and turns them into
// pkg/query statement trees.
//
// A document is YAML (or JSON, which parses as YAML):
//
//	kind: select
//	fields: [book.id, {as: total, sum: book.price}]
//	from:
//	  - table: book
//	    join:
//	      - {kind: left, table: author, on: {eq: [book.author_id, author.id]}}
//	where: {gt: [book.pages, 100]}
//	order_by: [{desc: book.id}]
//	limit: 10
//
// Strings in expression position are columns ("schema.table.column");
// inside values rows and set values they are text. Typed literals are
// written {<kind>: value}, for example {uint8: 7} or {text: "a.b"}, and
// typed nulls {null: <kind>}.
package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Statement kinds.
const (
	KindSelect = "select"
	KindInsert = "insert"
	KindUpdate = "update"
	KindDelete = "delete"
	KindValues = "values"
)

// Document is one query. Expression-valued fields stay as YAML nodes until
// Build interprets them.
type Document struct {
	Kind      string      `yaml:"kind"`
	With      []CTE       `yaml:"with"`
	Recursive bool        `yaml:"recursive"`
	Fields    []yaml.Node `yaml:"fields"`
	From      []yaml.Node `yaml:"from"`
	Where     yaml.Node   `yaml:"where"`
	GroupBy   []yaml.Node `yaml:"group_by"`
	Having    yaml.Node   `yaml:"having"`
	OrderBy   []yaml.Node `yaml:"order_by"`
	Limit     *uint32     `yaml:"limit"`
	Offset    *uint32     `yaml:"offset"`

	Table     string      `yaml:"table"`
	Columns   []string    `yaml:"columns"`
	Values    []yaml.Node `yaml:"values"`
	Source    *Document   `yaml:"source"`
	Set       yaml.Node   `yaml:"set"`
	Returning []yaml.Node `yaml:"returning"`

	Union        *Document `yaml:"union"`
	UnionAll     *Document `yaml:"union_all"`
	Except       *Document `yaml:"except"`
	ExceptAll    *Document `yaml:"except_all"`
	Intersect    *Document `yaml:"intersect"`
	IntersectAll *Document `yaml:"intersect_all"`
}

// CTE is one WITH entry.
type CTE struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Query   Document `yaml:"query"`
}

// Error reports a problem at a path inside a document, such as
// "where.and[1]" or "with[0].query.fields[2]".
type Error struct {
	Path string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func errorf(path string, node *yaml.Node, format string, args ...any) error {
	e := &Error{Path: path, Msg: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Line = node.Line
	}
	return e
}

// Parse decodes a single document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := decodeStrict(bytes.NewReader(data), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseAll decodes a stream of documents separated by "---".
func ParseAll(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []*Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse query document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, &doc)
	}
}

func decodeStrict(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("failed to parse query document: empty input")
		}
		return fmt.Errorf("failed to parse query document: %w", err)
	}
	return nil
}

// decodeNode decodes an embedded document node with unknown keys rejected.
// yaml.Node.Decode does not honour KnownFields, so the node is re-encoded.
func decodeNode(node *yaml.Node, path string, out *Document) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return errorf(path, node, "%v", err)
	}
	if err := decodeStrict(bytes.NewReader(data), out); err != nil {
		return errorf(path, node, "%v", err)
	}
	return nil
}
