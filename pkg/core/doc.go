// Package core defines the shared language of the leapquery system.
//
// This package contains:
//   - The scalar value model (Kind, Value) bound into statements
//   - The binding failure type (UnsupportedValueError)
//   - Dialect configuration data (IdentifierConfig, PlaceholderStyle)
//   - Adapter configuration and metadata types
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
