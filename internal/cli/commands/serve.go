package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render API",
		Long: `Start an HTTP server that renders query documents.

Endpoints:
  POST /render?dialect=<name>&mode=inline|params   render a YAML or JSON document
  GET  /dialects                                   list dialects
  GET  /healthz                                    health check

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  leapquery serve
  leapquery serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(server.Config{
				Addr:            c.Cfg.Server.Addr,
				ShutdownTimeout: c.Cfg.Server.ShutdownTimeout,
				Logger:          c.Logger,
			}).Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")

	return cmd
}
