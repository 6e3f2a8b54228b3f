package dialect

import "github.com/leapstack-labs/leapquery/pkg/core"

// Built-in dialects. They are registered automatically when the package is loaded.
var (
	// Postgres quotes with double quotes and binds with $1, $2, ...
	// The wire protocol has no unsigned integer types.
	Postgres = NewDialect("postgres").
		PlaceholderStyle(core.PlaceholderDollar).
		DefaultSchema("public").
		Unsupported(core.KindUint8, core.KindUint16, core.KindUint32, core.KindUint64).
		Build()

	// MySQL quotes with backticks.
	MySQL = NewDialect("mysql").
		Identifiers("`", "`", "``", core.QuoteAlways).
		Build()

	// SQLite stores integers as signed 64-bit values.
	SQLite = NewDialect("sqlite").
		DefaultSchema("main").
		Unsupported(core.KindUint64).
		Build()

	DuckDB = NewDialect("duckdb").
		DefaultSchema("main").
		Build()

	// Display is the human-readable dialect: identifiers stay bare unless
	// they need quoting.
	Display = NewDialect("display").
		Identifiers(`"`, `"`, `""`, core.QuoteWhenNeeded).
		Build()
)

func init() {
	for _, d := range []*Dialect{Postgres, MySQL, SQLite, DuckDB, Display} {
		Register(d)
	}
	SetDefault(Display)
}
