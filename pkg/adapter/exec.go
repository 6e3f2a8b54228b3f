package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// Querier is the subset of database/sql shared by *sql.DB, *sql.Tx and
// *sql.Conn.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Executor renders statements for one dialect, binds their arguments and
// runs them on a Querier.
type Executor struct {
	q          Querier
	dialect    *dialect.Dialect
	persistent bool
	logger     *slog.Logger

	mu    sync.Mutex
	stmts map[string]*sql.Stmt
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPersistent keeps prepared statements open and reuses them for
// identical SQL text until Close.
func WithPersistent(persistent bool) ExecutorOption {
	return func(e *Executor) {
		e.persistent = persistent
	}
}

// WithLogger sets the logger used for per-statement debug output.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Executor that renders with d. A nil d uses the default
// dialect.
func New(q Querier, d *dialect.Dialect, opts ...ExecutorOption) *Executor {
	if d == nil {
		d = dialect.Default()
	}
	e := &Executor{
		q:       q,
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
		stmts:   make(map[string]*sql.Stmt),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dialect returns the executor's dialect.
func (e *Executor) Dialect() *dialect.Dialect {
	return e.dialect
}

// Compile renders stmt and binds its arguments.
func (e *Executor) Compile(stmt query.Stmt) (string, []any, error) {
	sqlStr, vals := format.Compile(stmt, e.dialect)
	args, err := Bind(e.dialect, vals)
	if err != nil {
		return "", nil, err
	}
	return sqlStr, args, nil
}

// Exec runs a statement that doesn't return rows.
func (e *Executor) Exec(ctx context.Context, stmt query.Stmt) (sql.Result, error) {
	sqlStr, args, err := e.Compile(stmt)
	if err != nil {
		return nil, err
	}
	e.log(ctx, "executing statement", sqlStr, args)

	if e.persistent {
		ps, err := e.prepare(ctx, sqlStr)
		if err != nil {
			return nil, err
		}
		res, err := ps.ExecContext(ctx, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to execute SQL: %w", err)
		}
		return res, nil
	}

	res, err := e.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}
	return res, nil
}

// Query runs a statement that returns rows. The caller closes the rows.
func (e *Executor) Query(ctx context.Context, stmt query.Stmt) (*sql.Rows, error) {
	sqlStr, args, err := e.Compile(stmt)
	if err != nil {
		return nil, err
	}
	e.log(ctx, "executing query", sqlStr, args)

	var rows *sql.Rows
	if e.persistent {
		ps, perr := e.prepare(ctx, sqlStr)
		if perr != nil {
			return nil, perr
		}
		rows, err = ps.QueryContext(ctx, args...)
	} else {
		rows, err = e.q.QueryContext(ctx, sqlStr, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// Close releases cached prepared statements. The Querier stays open.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for sqlStr, ps := range e.stmts {
		if err := ps.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close prepared statement: %w", err)
		}
		delete(e.stmts, sqlStr)
	}
	return firstErr
}

func (e *Executor) prepare(ctx context.Context, sqlStr string) (*sql.Stmt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ps, ok := e.stmts[sqlStr]; ok {
		return ps, nil
	}
	ps, err := e.q.PrepareContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	e.stmts[sqlStr] = ps
	return ps, nil
}

func (e *Executor) log(ctx context.Context, msg, sqlStr string, args []any) {
	if !e.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	e.logger.DebugContext(ctx, msg,
		slog.String("query_id", uuid.NewString()),
		slog.String("dialect", e.dialect.Name),
		slog.String("sql", sqlStr),
		slog.Int("args", len(args)),
		slog.Bool("persistent", e.persistent),
	)
}
