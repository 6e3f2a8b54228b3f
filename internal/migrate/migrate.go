// Package migrate applies goose schema migrations to a target database.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its base FS and dialect in package state.
var mu sync.Mutex

var gooseDialects = map[string]string{
	"postgres": "postgres",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// Up runs all pending migrations found in dir. A nil fsys reads dir from
// the OS filesystem.
func Up(ctx context.Context, db *sql.DB, dialectName string, fsys fs.FS, dir string, logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialectName, fsys, logger); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func Version(ctx context.Context, db *sql.DB, dialectName string) (int64, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialectName, nil, nil); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func setup(dialectName string, fsys fs.FS, logger *slog.Logger) error {
	name, ok := gooseDialects[strings.ToLower(dialectName)]
	if !ok {
		return fmt.Errorf("migrations are not supported for %q", dialectName)
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(name); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(gooseLogger{logger})
	}
	return nil
}

// gooseLogger routes goose progress lines to slog.
type gooseLogger struct {
	l *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.l.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is only reached on goose API misuse.
func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	panic(fmt.Sprintf(format, v...))
}
