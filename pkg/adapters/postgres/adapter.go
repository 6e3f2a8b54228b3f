// Package postgres provides a PostgreSQL database adapter for leapquery.
//
// The default driver is pgx through its database/sql bridge. Setting
// options.driver to "pq" switches to lib/pq; both load CSV files with COPY.
package postgres

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

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// Driver names accepted in options.driver.
const (
	DriverPgx = "pgx"
	DriverPq  = "pq"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
	driver string
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the PostgreSQL rendering rules.
func (a *Adapter) Dialect() *dialect.Dialect {
	return dialect.Postgres
}

// Driver returns the database/sql driver in use, empty before Connect.
func (a *Adapter) Driver() string {
	return a.driver
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	driver := cfg.Option("driver", DriverPgx)
	sqlDriver, err := sqlDriverName(driver)
	if err != nil {
		return err
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildPostgresDSN(cfg)
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.String("driver", driver))

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.driver = driver
	return nil
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPgx:
		return "pgx", nil
	case DriverPq:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unknown postgres driver %q (want %q or %q)", driver, DriverPgx, DriverPq)
	}
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := cfg.Option("sslmode", "disable")

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	if cfg.Schema != "" {
		dsn += fmt.Sprintf(" search_path=%s", cfg.Schema)
	}

	return dsn
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, dialect.Postgres)
}

// LoadCSV loads data from a CSV file into a table using COPY FROM STDIN.
// All columns are created as TEXT type for robustness.
func (a *Adapter) LoadCSV(ctx context.Context, tableName string, filePath string) error {
	if a.DB == nil {
		return adapter.ErrNotConnected
	}

	file, err := os.Open(filePath) //nolint:gosec // filePath is expected to be user-provided
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	headers = adapter.TrimHeader(headers)

	table := adapter.TableRef(tableName)
	if err := a.Exec(ctx, adapter.TextTableDDL(dialect.Postgres, table, headers)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	if a.driver == DriverPq {
		err = a.copyInPq(ctx, table, headers, reader)
	} else {
		// Reset file to beginning; COPY skips the header itself.
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to reset file: %w", err)
		}
		err = a.copyFromPgx(ctx, table, headers, file)
	}
	if err != nil {
		return fmt.Errorf("failed to copy data: %w", err)
	}
	return nil
}

// copyFromPgx streams the CSV file through pgx's COPY protocol support.
func (a *Adapter) copyFromPgx(ctx context.Context, table query.TableRef, headers []string, r io.Reader) error {
	conn, err := a.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	copySQL := fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
		format.Inline(table, dialect.Postgres), quotedList(headers))

	return conn.Raw(func(driverConn any) error {
		sc, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}
		tag, err := sc.Conn().PgConn().CopyFrom(ctx, r, copySQL)
		if err != nil {
			return err
		}
		a.Logger.Debug("copied CSV rows", slog.String("table", string(table.Name)), slog.Int64("rows", tag.RowsAffected()))
		return nil
	})
}

// copyInPq loads the remaining CSV records with lib/pq's COPY IN statement.
func (a *Adapter) copyInPq(ctx context.Context, table query.TableRef, headers []string, reader *csv.Reader) error {
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	copySQL := pq.CopyIn(string(table.Name), headers...)
	if table.Schema != "" {
		copySQL = pq.CopyInSchema(string(table.Schema), string(table.Name), headers...)
	}
	stmt, err := tx.PrepareContext(ctx, copySQL)
	if err != nil {
		return fmt.Errorf("failed to prepare COPY: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	// An empty Exec flushes the buffered rows.
	if _, err := stmt.ExecContext(ctx); err != nil {
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = dialect.Postgres.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
