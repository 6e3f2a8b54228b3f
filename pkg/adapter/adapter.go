// Package adapter executes rendered statements against database/sql backends.
//
// The query and format packages never touch a connection. This package is
// the collaborator that turns their output into driver calls: it binds
// core.Value arguments into driver values, runs statements through an
// Executor, and defines the Adapter contract implemented by the backends in
// pkg/adapters.
package adapter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Type aliases for the shared connection types defined in pkg/core.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// ErrNotConnected is returned by adapter methods called before Connect.
var ErrNotConnected = errors.New("database connection not established")

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Handle returns the underlying connection pool, nil before Connect.
	Handle() *sql.DB

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// LoadCSV loads data from a CSV file into a table.
	// If the table doesn't exist, it is created from the header row.
	LoadCSV(ctx context.Context, tableName string, filePath string) error

	// Dialect returns the rendering rules for this backend.
	Dialect() *dialect.Dialect
}

// NewExecutor returns an Executor over the adapter's connection pool using
// the adapter's dialect.
func NewExecutor(a Adapter, opts ...ExecutorOption) *Executor {
	return New(a.Handle(), a.Dialect(), opts...)
}
