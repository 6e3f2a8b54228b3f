package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/migrate"
)

// MigrateOutput is the JSON form of migrate.
type MigrateOutput struct {
	Dir     string `json:"dir"`
	Version int64  `json:"version"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <dir>",
		Short: "Apply SQL migrations to the target database",
		Long: `Apply the goose-style SQL migrations found in dir to the target database.
Files are named NNNNN_description.sql and carry -- +goose Up / Down
sections. Migrations already applied are skipped.

Supported targets: postgres, mysql, sqlite.`,
		Example: `  leapquery migrate migrations
  leapquery migrate --env prod db/migrations`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args[0])
		},
	}
}

func runMigrate(cmd *cobra.Command, dir string) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	a, cleanup, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	name := a.Dialect().Name
	if err := migrate.Up(ctx, a.Handle(), name, os.DirFS(dir), ".", c.Logger); err != nil {
		return err
	}
	version, err := migrate.Version(ctx, a.Handle(), name)
	if err != nil {
		return err
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(MigrateOutput{Dir: dir, Version: version})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Migrations Applied"))
		r.Println("")
		r.Println(output.FormatKeyValue("Directory", dir))
		r.Println(output.FormatKeyValue("Version", fmt.Sprint(version)))
	case output.ModeCSV:
		return r.Table([]string{"dir", "version"}, [][]any{{dir, version}})
	default:
		r.Success(fmt.Sprintf("Database at version %d", version))
	}
	return nil
}
