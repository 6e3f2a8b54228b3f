package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// TableOutput is the JSON form of describe.
type TableOutput struct {
	Schema   string         `json:"schema"`
	Name     string         `json:"name"`
	RowCount int64          `json:"row_count"`
	Columns  []ColumnOutput `json:"columns"`
}

// ColumnOutput describes one column.
type ColumnOutput struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show the columns and row count of a table",
		Example: `  leapquery describe books
  leapquery describe public.books --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, table string) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()

	a, cleanup, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	meta, err := a.GetTableMetadata(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", table, err)
	}

	r := c.Renderer
	header := []string{"column", "type", "nullable", "primary_key"}
	rows := columnRows(meta.Columns)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := TableOutput{Schema: meta.Schema, Name: meta.Name, RowCount: meta.RowCount}
		for _, col := range meta.Columns {
			out.Columns = append(out.Columns, ColumnOutput{
				Name:       col.Name,
				Type:       col.Type,
				Nullable:   col.Nullable,
				PrimaryKey: col.PrimaryKey,
			})
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Table: "+qualified(meta)))
		r.Println("")
		if err := r.Table(header, rows); err != nil {
			return err
		}
		r.Println("")
		r.Println(output.FormatKeyValue("Rows", fmt.Sprint(meta.RowCount)))
	case output.ModeCSV:
		return r.Table(header, rows)
	default:
		r.Header(1, qualified(meta))
		if err := r.Table(header, rows); err != nil {
			return err
		}
		r.Muted(fmt.Sprintf("%d rows", meta.RowCount))
	}
	return nil
}

func columnRows(cols []core.Column) [][]any {
	rows := make([][]any, len(cols))
	for i, col := range cols {
		rows[i] = []any{col.Name, col.Type, col.Nullable, col.PrimaryKey}
	}
	return rows
}

func qualified(meta *core.TableMetadata) string {
	if meta.Schema == "" {
		return meta.Name
	}
	return meta.Schema + "." + meta.Name
}
