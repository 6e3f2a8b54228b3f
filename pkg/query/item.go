package query

// Field is one entry of a SELECT or RETURNING list.
type Field struct {
	Expr  Expr
	Alias Ident
}

// FromItem is one entry of a FROM list.
type FromItem struct {
	Source TableExpr
	Alias  Ident
}

// Row is one VALUES tuple.
type Row struct {
	Exprs []Expr
}

// Sort is an ORDER BY direction.
type Sort int

// Sort directions. SortDefault renders no keyword.
const (
	SortDefault Sort = iota
	SortAsc
	SortDesc
)

// Order is one ORDER BY entry.
type Order struct {
	Expr Expr
	Sort Sort
}

// Cte is one WITH entry: name(columns) AS (stmt).
type Cte struct {
	Name    Ident
	Columns []Ident
	Stmt    Stmt
}

// Assignment is one SET pair.
type Assignment struct {
	Column Ident
	Value  Expr
}

func (Field) node()      {}
func (FromItem) node()   {}
func (Row) node()        {}
func (Order) node()      {}
func (Cte) node()        {}
func (Assignment) node() {}

// AsField aliases an expression: expr AS alias.
func AsField(expr any, alias string) Field {
	return Field{Expr: toExpr(expr), Alias: Ident(alias)}
}

// AsTable aliases a table expression: table AS alias.
func AsTable(table any, alias string) FromItem {
	return FromItem{Source: toTableExpr(table), Alias: Ident(alias)}
}

// Asc orders by x ascending.
func Asc(x any) Order { return Order{Expr: toExpr(x), Sort: SortAsc} }

// Desc orders by x descending.
func Desc(x any) Order { return Order{Expr: toExpr(x), Sort: SortDesc} }

// NewRow builds a VALUES tuple. Rows hold data, so a Go string is a text
// value here; pass a ColumnRef to reference a column.
func NewRow(items ...any) Row {
	out := make([]Expr, len(items))
	for i, e := range items {
		out[i] = toValueExpr(e)
	}
	return Row{Exprs: out}
}

// Set builds a SET pair. col may be a name or a ColumnRef, whose
// qualifiers are dropped. As with rows, a Go string value is text.
func Set(col, value any) Assignment {
	return Assignment{Column: toIdent(col), Value: toValueExpr(value)}
}
