package query

// Ident is a single SQL name.
type Ident string

func (Ident) node() {}

// ColumnRef is a column name with up to two qualifiers.
// Empty qualifiers are omitted; Schema is only meaningful with Table.
type ColumnRef struct {
	Schema Ident
	Table  Ident
	Name   Ident
}

func (ColumnRef) node()     {}
func (ColumnRef) exprNode() {}

// Column returns an unqualified column reference.
func Column(name string) ColumnRef {
	return ColumnRef{Name: Ident(name)}
}

// TableColumn returns a table-qualified column reference.
func TableColumn(table, name string) ColumnRef {
	return ColumnRef{Table: Ident(table), Name: Ident(name)}
}

// SchemaColumn returns a schema- and table-qualified column reference.
func SchemaColumn(schema, table, name string) ColumnRef {
	return ColumnRef{Schema: Ident(schema), Table: Ident(table), Name: Ident(name)}
}

// Parts returns the non-empty name parts in order.
func (c ColumnRef) Parts() []Ident {
	switch {
	case c.Table == "":
		return []Ident{c.Name}
	case c.Schema == "":
		return []Ident{c.Table, c.Name}
	default:
		return []Ident{c.Schema, c.Table, c.Name}
	}
}

// Ident returns the column name without qualifiers.
func (c ColumnRef) Ident() Ident { return c.Name }

// TableRef is a table name with an optional schema.
type TableRef struct {
	Schema Ident
	Name   Ident
}

func (TableRef) node()          {}
func (TableRef) tableExprNode() {}

// Table returns an unqualified table reference.
func Table(name string) TableRef {
	return TableRef{Name: Ident(name)}
}

// SchemaTable returns a schema-qualified table reference.
func SchemaTable(schema, name string) TableRef {
	return TableRef{Schema: Ident(schema), Name: Ident(name)}
}

// Parts returns the non-empty name parts in order.
func (t TableRef) Parts() []Ident {
	if t.Schema == "" {
		return []Ident{t.Name}
	}
	return []Ident{t.Schema, t.Name}
}

// Column returns a column of this table, qualified by the table name only.
func (t TableRef) Column(name string) ColumnRef {
	return ColumnRef{Table: t.Name, Name: Ident(name)}
}

// FuncRef is a function name with an optional schema.
type FuncRef struct {
	Schema Ident
	Name   Ident
}

func (FuncRef) node() {}

// Func returns an unqualified function reference.
func Func(name string) FuncRef {
	return FuncRef{Name: Ident(name)}
}

// SchemaFunc returns a schema-qualified function reference.
func SchemaFunc(schema, name string) FuncRef {
	return FuncRef{Schema: Ident(schema), Name: Ident(name)}
}

// Parts returns the non-empty name parts in order.
func (f FuncRef) Parts() []Ident {
	if f.Schema == "" {
		return []Ident{f.Name}
	}
	return []Ident{f.Schema, f.Name}
}
