package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/query"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Run query documents against the target database",
		Long: `Render each document in the file for the target's dialect, bind its
values and run it. Statements that return rows (SELECT, VALUES, set
operations and anything with RETURNING) print a table; the rest print the
number of affected rows.

Use --output to choose the table format: auto, text, markdown, json, csv`,
		Example: `  # Run against the configured target
  leapquery exec queries/books.yaml

  # Run against the prod environment and print CSV
  leapquery exec --env prod -o csv queries/report.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0])
		},
	}

	cmd.Flags().Bool("persistent", false, "Prepare statements once and reuse them")

	return cmd
}

func runExec(cmd *cobra.Command, file string) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()

	docs, err := readDocuments(cmd, file)
	if err != nil {
		return err
	}
	stmts := make([]query.Stmt, 0, len(docs))
	for i, doc := range docs {
		stmt, err := doc.Build()
		if err != nil {
			return fmt.Errorf("%s: document %d: %w", file, i+1, err)
		}
		stmts = append(stmts, stmt)
	}

	a, cleanup, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	exec := adapter.NewExecutor(a,
		adapter.WithPersistent(c.Cfg.Persistent),
		adapter.WithLogger(c.Logger))
	defer func() { _ = exec.Close() }()

	for i, stmt := range stmts {
		if returnsRows(stmt) {
			err = queryRows(ctx, c.Renderer, exec, stmt)
		} else {
			err = execStmt(ctx, c.Renderer, exec, stmt)
		}
		if err != nil {
			return fmt.Errorf("%s: document %d: %w", file, i+1, err)
		}
	}
	return nil
}

func returnsRows(stmt query.Stmt) bool {
	switch s := stmt.(type) {
	case query.RowSource:
		return true
	case *query.InsertStmt:
		return s.ReturningClause != nil
	case *query.UpdateStmt:
		return s.ReturningClause != nil
	case *query.DeleteStmt:
		return s.ReturningClause != nil
	default:
		return false
	}
}

func queryRows(ctx context.Context, r *output.Renderer, exec *adapter.Executor, stmt query.Stmt) error {
	rows, err := exec.Query(ctx, stmt)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	var data [][]any
	for rows.Next() {
		vals, err := adapter.ScanValues(rows)
		if err != nil {
			return err
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	mode := r.EffectiveMode()
	if len(data) == 0 && (mode == output.ModeText || mode == output.ModeMarkdown) {
		r.Println("(0 rows)")
		return nil
	}
	if err := r.Table(cols, data); err != nil {
		return err
	}
	if mode == output.ModeText || mode == output.ModeMarkdown {
		r.Printf("(%d rows)\n", len(data))
	}
	return nil
}

func execStmt(ctx context.Context, r *output.Renderer, exec *adapter.Executor, stmt query.Stmt) error {
	res, err := exec.Exec(ctx, stmt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]int64{"rows_affected": n})
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Rows affected", fmt.Sprint(n)))
	case output.ModeCSV:
		r.Println("rows_affected")
		r.Println(n)
	default:
		r.Success(fmt.Sprintf("%d rows affected", n))
	}
	return nil
}
