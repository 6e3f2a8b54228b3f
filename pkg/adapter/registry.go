package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

// Factory builds an unconnected adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

// Backend describes one registered adapter: the target type it serves and
// the dialect its statements are compiled with.
type Backend struct {
	Type    string
	Dialect string
}

type entry struct {
	backend Backend
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]entry)
)

// Register adds an adapter factory under a case-insensitive target type.
// Adapter packages call it from init(). The factory is invoked once here to
// record the adapter's dialect; it must not connect.
func Register(name string, factory Factory) {
	b := Backend{Type: strings.ToLower(name)}
	if a := factory(nil); a != nil {
		if d := a.Dialect(); d != nil {
			b.Dialect = d.Name
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b.Type] = entry{backend: b, factory: factory}
}

// Get retrieves an adapter factory by target type.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[strings.ToLower(name)]
	return e.factory, ok
}

// NewAdapter creates an unconnected adapter for cfg.Type.
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: ListAdapters()}
	}
	return factory(logger), nil
}

// Backends returns every registered backend, sorted by type.
func Backends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Backend, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.backend)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// ListAdapters returns the registered target types (sorted).
func ListAdapters() []string {
	backends := Backends()
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Type
	}
	return names
}

// ForDialect returns the target types that execute statements compiled
// with the named dialect. Render-only dialects have none.
func ForDialect(dialectName string) []string {
	var out []string
	for _, b := range Backends() {
		if strings.EqualFold(b.Dialect, dialectName) {
			out = append(out, b.Type)
		}
	}
	return out
}

// IsRegistered reports whether a target type has an adapter.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when a target type has no adapter.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q (available: %s); check target.type in leapquery.yaml",
		e.Type, strings.Join(e.Available, ", "))
}
