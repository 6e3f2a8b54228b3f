// Package schema derives query.Schema descriptions from Go structs.
//
// A struct maps to a table named after the snake_case type name, or the
// result of its TableName method. Exported fields map to columns named by
// their `db` tag or their snake_case field name; `db:"-"` skips a field.
//
//	type Book struct {
//		ID     int64 `db:"id"`
//		Title  string
//		Author *string
//	}
//
//	books := schema.MustOf(Book{})
//	stmt := query.InsertInto(books).Values(books.Record(b))
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ettle/strcase"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// ErrNotStruct is returned when Of is given anything but a struct or a
// pointer to one.
var ErrNotStruct = errors.New("schema: value is not a struct")

// ErrNoColumns is returned for a struct without mappable fields.
var ErrNoColumns = errors.New("schema: struct has no exported columns")

// UnsupportedFieldError is returned when a field's type has no value kind.
type UnsupportedFieldError struct {
	Struct string
	Field  string
	Type   reflect.Type
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("schema: field %s.%s has unsupported type %s", e.Struct, e.Field, e.Type)
}

// Tabler lets a struct choose its table name.
type Tabler interface {
	TableName() string
}

// Mapping is a table description derived from a struct type.
type Mapping struct {
	typ     reflect.Type
	table   query.TableRef
	columns []query.ColumnRef
	fields  [][]int // reflect field index per column
}

var _ query.Schema = (*Mapping)(nil)

var timeType = reflect.TypeOf(time.Time{})

// Of builds the mapping for v's struct type.
func Of(v any) (*Mapping, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, ErrNotStruct
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	m := &Mapping{typ: t, table: query.Table(tableName(v, t))}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		// Promoted fields of embedded structs are visited on their own.
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Type != timeType {
			continue
		}
		tag := f.Tag.Get("db")
		if tag == "-" {
			continue
		}
		if !isSupported(f.Type) {
			return nil, &UnsupportedFieldError{Struct: t.Name(), Field: f.Name, Type: f.Type}
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strcase.ToSnake(f.Name)
		}
		m.columns = append(m.columns, query.TableColumn(string(m.table.Name), name))
		m.fields = append(m.fields, f.Index)
	}
	if len(m.columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, t)
	}
	return m, nil
}

// MustOf is Of for package-level mappings; it panics on error.
func MustOf(v any) *Mapping {
	m, err := Of(v)
	if err != nil {
		panic(err)
	}
	return m
}

func tableName(v any, t reflect.Type) string {
	if tb, ok := v.(Tabler); ok {
		return tb.TableName()
	}
	if tb, ok := reflect.New(t).Interface().(Tabler); ok {
		return tb.TableName()
	}
	return strcase.ToSnake(t.Name())
}

// Table returns the mapped table.
func (m *Mapping) Table() query.TableRef { return m.table }

// Columns returns the table-qualified columns in field order.
func (m *Mapping) Columns() []query.ColumnRef {
	out := make([]query.ColumnRef, len(m.columns))
	copy(out, m.columns)
	return out
}

// Column returns the qualified column for a column name.
func (m *Mapping) Column(name string) (query.ColumnRef, bool) {
	for _, c := range m.columns {
		if string(c.Name) == name {
			return c, true
		}
	}
	return query.ColumnRef{}, false
}

// Values returns the record's values in column order.
func (m *Mapping) Values(v any) ([]core.Value, error) {
	rv, err := m.structValue(v)
	if err != nil {
		return nil, err
	}
	out := make([]core.Value, len(m.fields))
	for i, idx := range m.fields {
		out[i] = toValue(rv.FieldByIndex(idx))
	}
	return out, nil
}

// Row returns the record as a VALUES tuple in column order.
func (m *Mapping) Row(v any) (query.Row, error) {
	vals, err := m.Values(v)
	if err != nil {
		return query.Row{}, err
	}
	exprs := make([]query.Expr, len(vals))
	for i, val := range vals {
		exprs[i] = &query.Literal{Value: val}
	}
	return query.Row{Exprs: exprs}, nil
}

// Assignments returns column = value pairs for every column.
func (m *Mapping) Assignments(v any) ([]query.Assignment, error) {
	vals, err := m.Values(v)
	if err != nil {
		return nil, err
	}
	out := make([]query.Assignment, len(vals))
	for i, val := range vals {
		out[i] = query.Assignment{Column: m.columns[i].Name, Value: &query.Literal{Value: val}}
	}
	return out, nil
}

// Record binds a struct value to the mapping so it can be passed where a
// query.Rower or query.Assigner is expected. v must have the mapped type;
// Record panics otherwise.
func (m *Mapping) Record(v any) Record {
	row, err := m.Row(v)
	if err != nil {
		panic(err)
	}
	sets, _ := m.Assignments(v)
	return Record{row: row, sets: sets}
}

func (m *Mapping) structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("schema: nil record, mapping is for %s", m.typ)
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("schema: nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Type() != m.typ {
		return reflect.Value{}, fmt.Errorf("schema: got %s, mapping is for %s", rv.Type(), m.typ)
	}
	return rv, nil
}

// Record is one struct value bound to its mapping.
type Record struct {
	row  query.Row
	sets []query.Assignment
}

var (
	_ query.Rower    = Record{}
	_ query.Assigner = Record{}
)

// Row returns the record's VALUES tuple.
func (r Record) Row() query.Row { return r.row }

// Assignments returns the record's SET pairs.
func (r Record) Assignments() []query.Assignment { return r.sets }
