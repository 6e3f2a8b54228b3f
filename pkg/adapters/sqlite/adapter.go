// Package sqlite provides a SQLite database adapter for leapquery.
//
// The default driver is the pure-Go modernc.org/sqlite. Setting
// options.driver to "sqlite3" switches to the cgo driver mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver (cgo)
	_ "modernc.org/sqlite"          // sqlite driver (pure Go)

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// Driver names accepted in options.driver.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite rendering rules.
func (a *Adapter) Dialect() *dialect.Dialect {
	return dialect.SQLite
}

// Connect opens the database file at cfg.Path, or cfg.DSN when set.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	driver := cfg.Option("driver", DriverModernc)
	if driver != DriverModernc && driver != DriverMattn {
		return fmt.Errorf("unknown sqlite driver %q (want %q or %q)", driver, DriverModernc, DriverMattn)
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Path
	}
	if dsn == "" {
		dsn = MemoryPath
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", dsn), slog.String("driver", driver))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if dsn == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ColumnsQuery selects column metadata through the pragma_table_info table
// function. Positions are 1-based like information_schema's.
func ColumnsQuery(schema, table string) *query.SelectStmt {
	return query.Select("name", "type", "notnull", query.Add("cid", 1)).
		From(query.Call("pragma_table_info", query.Text(table), query.Text(schema))).
		OrderBy("cid")
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	schema, name := adapter.ParseQualifiedName(table, dialect.SQLite)
	return a.TableMetadata(ctx, dialect.SQLite, ColumnsQuery(schema, name), schema, name)
}

// LoadCSV loads data from a CSV file into a table with batched inserts.
func (a *Adapter) LoadCSV(ctx context.Context, tableName string, filePath string) error {
	return a.LoadCSVCommon(ctx, dialect.SQLite, tableName, filePath)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
