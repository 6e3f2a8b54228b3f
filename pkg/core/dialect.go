package core

// QuotePolicy decides when identifiers are wrapped in quote characters.
type QuotePolicy int

const (
	// QuoteAlways quotes every identifier (backend rendering).
	QuoteAlways QuotePolicy = iota
	// QuoteWhenNeeded leaves bare lowercase identifiers unquoted (display rendering).
	QuoteWhenNeeded
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// String returns the style name.
func (s PlaceholderStyle) String() string {
	if s == PlaceholderDollar {
		return "dollar"
	}
	return "question"
}

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string      // Quote character: ", `
	QuoteEnd string      // End quote character (usually same as Quote)
	Escape   string      // Escape sequence for an embedded QuoteEnd: "", ``
	Policy   QuotePolicy // When to quote
}
