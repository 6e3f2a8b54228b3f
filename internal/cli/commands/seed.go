package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
)

// SeedOutput is the JSON form of seed.
type SeedOutput struct {
	Table    string `json:"table"`
	FilePath string `json:"file_path"`
	Rows     int64  `json:"rows"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <table> <csv>",
		Short: "Load rows from a CSV file into a table",
		Long: `Load rows from a CSV file with a header row into a table of the target
database. A missing table is created with one TEXT column per header field.
Rows are inserted in batches inside one transaction.`,
		Example: `  # Load reference data
  leapquery seed countries data/countries.csv

  # Load into a schema-qualified table and report as JSON
  leapquery seed public.countries data/countries.csv --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runSeed(cmd *cobra.Command, table, file string) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()

	a, cleanup, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.LoadCSV(ctx, table, file); err != nil {
		return fmt.Errorf("failed to seed %s: %w", table, err)
	}

	var rows int64
	if meta, err := a.GetTableMetadata(ctx, table); err == nil {
		rows = meta.RowCount
	} else {
		c.Logger.Debug("row count unavailable", slog.String("table", table), slog.String("error", err.Error()))
	}

	absPath, _ := filepath.Abs(file)
	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(SeedOutput{Table: table, FilePath: absPath, Rows: rows})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Seed Loaded"))
		r.Println("")
		r.Println(output.FormatKeyValue("Table", table))
		r.Println(output.FormatKeyValue("File", file))
		r.Println(output.FormatKeyValue("Rows", fmt.Sprint(rows)))
	case output.ModeCSV:
		return r.Table([]string{"table", "file_path", "rows"}, [][]any{{table, absPath, rows}})
	default:
		r.Success(fmt.Sprintf("Loaded %s into %s", filepath.Base(file), table))
		r.Muted(fmt.Sprintf("%d rows in table", rows))
	}
	return nil
}
