package config

import (
	"time"

	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Default configuration values.
const (
	DefaultOutput          = OutputAuto
	DefaultTargetType      = "sqlite"
	DefaultTargetDatabase  = ":memory:"
	DefaultServerAddr      = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
)

// defaults is the lowest koanf layer.
func defaults() map[string]any {
	return map[string]any{
		"dialect":                 "",
		"output":                  DefaultOutput,
		"verbose":                 false,
		"persistent":              false,
		"server.addr":             DefaultServerAddr,
		"server.shutdown_timeout": DefaultShutdownTimeout.String(),
	}
}

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "main" as fallback.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok && d.DefaultSchema != "" {
		return d.DefaultSchema
	}
	return "main"
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}

	// mysql has no default schema; the database name plays that role.
	if t.Schema == "" && t.Type != "mysql" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = 3306
		}
	}
}
