package adapter

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// maxInsertParams bounds the number of bound values in one CSV insert
// batch, staying under SQLite's historical limit of 999.
const maxInsertParams = 999

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query and Handle implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Handle returns the connection pool, nil before Connect.
func (b *BaseSQLAdapter) Handle() *sql.DB {
	return b.DB
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	b.logger().Debug("executing SQL", slog.String("sql", sqlStr), slog.Int("args", len(args)))
	_, err := b.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logger().Debug("executing query", slog.String("sql", sqlStr), slog.Int("args", len(args)))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses the dialect's default schema if not specified.
func ParseQualifiedName(table string, d *dialect.Dialect) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return d.DefaultSchema, table
}

// TableRef converts "name" or "schema.name" into a table reference.
func TableRef(table string) query.TableRef {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return query.SchemaTable(schema, name)
	}
	return query.Table(table)
}

// ColumnsQuery selects column metadata for one table from
// information_schema.columns, in ordinal order.
func ColumnsQuery(schema, table string) *query.SelectStmt {
	return query.Select("column_name", "data_type", "is_nullable", "ordinal_position").
		From(query.SchemaTable("information_schema", "columns")).
		Filter(query.Eq("table_schema", query.Text(schema))).
		Filter(query.Eq("table_name", query.Text(table))).
		OrderBy("ordinal_position")
}

// CountQuery counts the rows of a table.
func CountQuery(table query.TableRef) *query.SelectStmt {
	return query.Select(query.Count(1)).From(table)
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata
// over information_schema.columns.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table string, d *dialect.Dialect) (*core.TableMetadata, error) {
	schema, tableName := ParseQualifiedName(table, d)
	return b.TableMetadata(ctx, d, ColumnsQuery(schema, tableName), schema, tableName)
}

// TableMetadata runs a column query whose rows are (name, type, nullable,
// position) and adds the table's row count. nullable is "YES" or a value
// the driver scans into a bool.
func (b *BaseSQLAdapter) TableMetadata(ctx context.Context, d *dialect.Dialect, columnsQuery query.Stmt, schema, tableName string) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	exec := New(b.DB, d, WithLogger(b.Logger))
	columns, err := FetchAll(ctx, exec, columnsQuery, scanColumn)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}

	ref := query.Table(tableName)
	if schema != "" {
		ref = query.SchemaTable(schema, tableName)
	}
	// Rendered inline: count(1) has no bound arguments to type.
	var rowCount int64
	countSQL := format.Inline(CountQuery(ref), d)
	if err := b.DB.QueryRowContext(ctx, countSQL).Scan(&rowCount); err != nil {
		// Non-fatal error, just set to 0
		b.logger().Debug("row count failed", slog.String("table", tableName), slog.String("error", err.Error()))
		rowCount = 0
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

func scanColumn(rows *sql.Rows) (core.Column, error) {
	var col core.Column
	var nullable any
	if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
		return col, err
	}
	switch v := nullable.(type) {
	case string:
		col.Nullable = v == "YES"
	case []byte:
		col.Nullable = string(v) == "YES"
	case bool:
		col.Nullable = v
	case int64:
		// pragma_table_info reports "notnull"
		col.Nullable = v == 0
	}
	return col, nil
}

// TrimHeader trims surrounding whitespace from CSV header fields.
func TrimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// TextTableDDL creates table, if missing, with one TEXT column per name.
func TextTableDDL(d *dialect.Dialect, table query.TableRef, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.QuoteIdentifier(c) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", format.Inline(table, d), strings.Join(defs, ", "))
}

// LoadCSVCommon loads a CSV file with a header row into a table. A missing
// table is created with one TEXT column per header field. Rows are inserted
// in batches inside one transaction with bound parameters.
func (b *BaseSQLAdapter) LoadCSVCommon(ctx context.Context, d *dialect.Dialect, tableName, filePath string) error {
	if b.DB == nil {
		return ErrNotConnected
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := TableRef(tableName)
	header = TrimHeader(header)
	columns := make([]any, len(header))
	for i, h := range header {
		columns[i] = h
	}

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, TextTableDDL(d, table, header)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	exec := New(tx, d, WithLogger(b.Logger))
	perBatch := max(1, maxInsertParams/len(header))
	batch := make([]any, 0, perBatch)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := exec.Exec(ctx, query.Insert(table, columns...).Values(batch...)); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		row := make([]any, len(record))
		for i, field := range record {
			row[i] = field
		}
		batch = append(batch, row)
		if len(batch) == perBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit CSV load: %w", err)
	}
	b.logger().Debug("loaded CSV", slog.String("table", tableName), slog.Int("rows", total))
	return nil
}
