package adapter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/query"
)

// ErrNoRows is returned by FetchOne when the statement yields no rows.
// It is sql.ErrNoRows, so either sentinel matches with errors.Is.
var ErrNoRows = sql.ErrNoRows

// ScanFunc decodes the current row.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// FetchAll runs stmt and decodes every row.
func FetchAll[T any](ctx context.Context, e *Executor, stmt query.Stmt, scan ScanFunc[T]) ([]T, error) {
	rows, err := e.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// FetchOptional runs stmt and decodes the first row, if any. Remaining rows
// are discarded.
func FetchOptional[T any](ctx context.Context, e *Executor, stmt query.Stmt, scan ScanFunc[T]) (T, bool, error) {
	var zero T

	rows, err := e.Query(ctx, stmt)
	if err != nil {
		return zero, false, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, fmt.Errorf("error iterating rows: %w", err)
		}
		return zero, false, nil
	}
	v, err := scan(rows)
	if err != nil {
		return zero, false, fmt.Errorf("failed to scan row: %w", err)
	}
	return v, true, nil
}

// FetchOne is FetchOptional that fails with ErrNoRows on an empty result.
func FetchOne[T any](ctx context.Context, e *Executor, stmt query.Stmt, scan ScanFunc[T]) (T, error) {
	v, ok, err := FetchOptional(ctx, e, stmt, scan)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("fetch one: %w", ErrNoRows)
	}
	return v, nil
}

// ScanMap decodes the current row into a map keyed by column name.
func ScanMap(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cols))
	for i, c := range cols {
		out[c] = vals[i]
	}
	return out, nil
}

// ScanValues decodes the current row into a slice in column order.
func ScanValues(rows *sql.Rows) ([]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return vals, nil
}
