package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available SQL dialects",
		Long: `List every registered dialect with its identifier quoting, placeholder
style, default schema, the value kinds it cannot bind and the target
types that can execute statements rendered with it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	def := dialect.Default()
	header := []string{"name", "quote", "placeholder", "default_schema", "unsupported", "adapters", "default"}
	var rows [][]any
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		unsupported := make([]string, 0)
		for _, k := range d.UnsupportedKinds() {
			unsupported = append(unsupported, k.String())
		}
		rows = append(rows, []any{
			d.Name,
			d.Identifiers.Quote + d.Identifiers.QuoteEnd,
			d.FormatPlaceholder(1),
			d.DefaultSchema,
			strings.Join(unsupported, ","),
			strings.Join(adapter.ForDialect(d.Name), ","),
			def != nil && def.Name == d.Name,
		})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Dialects"))
		r.Println("")
	}
	return r.Table(header, rows)
}
