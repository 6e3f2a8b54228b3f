package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/querydoc"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

// RenderedDoc is one rendered document in render output.
type RenderedDoc struct {
	File  string `json:"file"`
	Index int    `json:"index"`
	querydoc.Rendered
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var params bool

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render query documents to SQL",
		Long: `Render query documents to SQL for the selected dialect.

Each file may hold several YAML documents separated by "---". Use "-" to
read from stdin. By default values are written inline as SQL literals;
with --params they become placeholders and are listed as bound args.

Output adapts to environment:
  - Terminal: Plain SQL (suitable for syntax highlighting)
  - Piped/Scripted: Markdown with code block`,
		Example: `  # Render for the display dialect
  leapquery render queries/books.yaml

  # Render for Postgres with $n placeholders
  leapquery render --dialect postgres --params queries/books.yaml

  # Render from stdin as JSON
  cat books.yaml | leapquery render - --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, params)
		},
	}

	cmd.Flags().BoolVar(&params, "params", false, "Render values as placeholders and list the bound args")

	return cmd
}

func runRender(cmd *cobra.Command, files []string, params bool) error {
	c := NewCommandContext(cmd)

	d, err := c.Cfg.RenderDialect()
	if err != nil {
		return err
	}
	mode := format.ModeInline
	if params {
		mode = format.ModeParams
	}

	results := make([][]RenderedDoc, len(files))
	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			docs, err := readDocuments(cmd, file)
			if err != nil {
				return err
			}
			out := make([]RenderedDoc, 0, len(docs))
			for j, doc := range docs {
				rendered, err := querydoc.Render(doc, d, mode)
				if err != nil {
					return fmt.Errorf("%s: document %d: %w", file, j+1, err)
				}
				out = append(out, RenderedDoc{File: file, Index: j + 1, Rendered: rendered})
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []RenderedDoc
	for _, docs := range results {
		all = append(all, docs...)
	}
	c.Logger.Debug("rendered documents",
		slog.Int("files", len(files)),
		slog.Int("documents", len(all)),
		slog.String("dialect", d.Name),
		slog.String("mode", mode.String()))

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if all == nil {
			all = []RenderedDoc{}
		}
		return r.JSON(all)
	case output.ModeMarkdown:
		for _, doc := range all {
			r.Println(output.FormatHeader(1, "Rendered SQL: "+docLabel(doc, len(all))))
			r.Println("")
			r.Println(output.FormatCodeBlock("sql", doc.SQL))
			if params && len(doc.Args) > 0 {
				r.Println("")
				r.Println(output.FormatHeader(2, "Args"))
				r.Println("")
				if err := r.Table(argHeader, argRows(doc.Args)); err != nil {
					return err
				}
			}
			r.Println("")
		}
	default:
		for _, doc := range all {
			if len(all) > 1 {
				r.Muted("-- " + docLabel(doc, len(all)))
			}
			r.Println(doc.SQL)
			if params && len(doc.Args) > 0 {
				if err := r.Table(argHeader, argRows(doc.Args)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

var argHeader = []string{"#", "kind", "value"}

func argRows(args []querydoc.Arg) [][]any {
	rows := make([][]any, len(args))
	for i, a := range args {
		v := a.Value
		if b, ok := v.([]byte); ok {
			v = hex.EncodeToString(b)
		}
		rows[i] = []any{i + 1, a.Kind, v}
	}
	return rows
}

func docLabel(doc RenderedDoc, total int) string {
	if total == 1 {
		return doc.File
	}
	return fmt.Sprintf("%s #%d", doc.File, doc.Index)
}

// readDocuments parses every document in file, or stdin for "-".
func readDocuments(cmd *cobra.Command, file string) ([]*querydoc.Document, error) {
	var r io.Reader
	if file == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open query file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	docs, err := querydoc.ParseAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: no query documents found", file)
	}
	return docs, nil
}
