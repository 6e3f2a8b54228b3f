// Package commands implements the leapquery subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/config"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
)

type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig returns the config stored in ctx, or the defaults when the
// command ran without the root pre-run.
func GetConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	target := &config.TargetConfig{Type: config.DefaultTargetType, Database: config.DefaultTargetDatabase}
	config.ApplyTargetDefaults(target)
	return &config.Config{
		Output: config.DefaultOutput,
		Target: target,
		Server: config.ServerConfig{
			Addr:            config.DefaultServerAddr,
			ShutdownTimeout: config.DefaultShutdownTimeout,
		},
	}
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the logger stored in ctx, or a discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig(ctx)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// Connect opens the configured target. The returned cleanup closes it and
// must be called (typically via defer).
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, func(), error) {
	cfg := c.Cfg.Target.AdapterConfig()
	a, err := adapter.NewAdapter(cfg, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}
	cleanup := func() {
		if err := a.Close(); err != nil {
			c.Logger.Warn("failed to close connection", slog.String("error", err.Error()))
		}
	}
	return a, cleanup, nil
}
