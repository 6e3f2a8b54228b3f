package query

// Schema describes a table and its columns. pkg/schema derives one from a
// struct; hand-written implementations work the same way.
type Schema interface {
	Table() TableRef
	Columns() []ColumnRef
}

// Rower is a record that yields one VALUES tuple in column order.
type Rower interface {
	Row() Row
}

// Assigner is a record that yields SET pairs.
type Assigner interface {
	Assignments() []Assignment
}

// UpdateOf starts an UPDATE of the schema's table.
func UpdateOf(s Schema) *UpdateStmt {
	return Update(s.Table())
}

// DeleteFrom starts a DELETE from the schema's table.
func DeleteFrom(s Schema) *DeleteStmt {
	return Delete(s.Table())
}
