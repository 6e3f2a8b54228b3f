// Package dialect provides the per-backend textual rules used by the renderer.
//
// A Dialect is plain data: identifier quoting, placeholder style, default
// schema and the set of value kinds the backend cannot bind. Built-in
// dialects are registered at init; adapters look theirs up by name.
package dialect

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

// Dialect represents a SQL backend's rendering configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	unsupported map[core.Kind]struct{}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., " -> "")
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier unless it is a plain
// lowercase name ([a-z_][a-z0-9_]*).
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if isBareIdentifier(name) {
		return name
	}
	return d.QuoteIdentifier(name)
}

// FormatIdentifier applies the dialect's quote policy.
func (d *Dialect) FormatIdentifier(name string) string {
	if d.Identifiers.Policy == core.QuoteWhenNeeded {
		return d.QuoteIdentifierIfNeeded(name)
	}
	return d.QuoteIdentifier(name)
}

func isBareIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// QuoteLiteral wraps a string in single quotes, doubling embedded quotes.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatValue returns the inline SQL literal for v. The form is the same in
// every dialect; the method exists so callers need only the dialect.
func (d *Dialect) FormatValue(v core.Value) string {
	return FormatValue(v)
}

// FormatValue returns the inline SQL literal for v.
func FormatValue(v core.Value) string {
	if v.IsNull() {
		return "null"
	}
	switch k := v.Kind(); {
	case k == core.KindBool:
		return strconv.FormatBool(v.BoolValue())
	case k.IsSigned():
		return strconv.FormatInt(v.Int64Value(), 10)
	case k.IsUnsigned():
		return strconv.FormatUint(v.Uint64Value(), 10)
	case k == core.KindText:
		return QuoteLiteral(v.TextValue())
	case k == core.KindBytes:
		return "X'" + hex.EncodeToString(v.BytesValue()) + "'"
	case k == core.KindTimestamp:
		return QuoteLiteral(v.TimeValue().Format(time.RFC3339Nano))
	default:
		return "null"
	}
}

// Supports reports whether the backend can bind values of the kind.
func (d *Dialect) Supports(kind core.Kind) bool {
	_, bad := d.unsupported[kind]
	return !bad
}

// CheckBindable returns an *core.UnsupportedValueError when v cannot be
// bound by this backend. Nulls are checked by their kind too.
func (d *Dialect) CheckBindable(v core.Value) error {
	if d.Supports(v.Kind()) {
		return nil
	}
	return &core.UnsupportedValueError{Kind: v.Kind(), Null: v.IsNull(), Backend: d.Name}
}

// UnsupportedKinds returns the kinds this backend rejects, in kind order.
func (d *Dialect) UnsupportedKinds() []core.Kind {
	var kinds []core.Kind
	for k := core.KindBool; k <= core.KindTimestamp; k++ {
		if !d.Supports(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Identifiers default to always-quoted ANSI double quotes.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:    `"`,
				QuoteEnd: `"`,
				Escape:   `""`,
				Policy:   core.QuoteAlways,
			},
			unsupported: make(map[core.Kind]struct{}),
		},
	}
}

// Identifiers configures identifier quoting.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, policy core.QuotePolicy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
		Policy:   policy,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Unsupported marks value kinds the backend cannot bind.
func (b *Builder) Unsupported(kinds ...core.Kind) *Builder {
	for _, k := range kinds {
		b.dialect.unsupported[k] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
