// Package format renders query trees to SQL text.
package format

import (
	"bytes"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Printer writes one tree into a buffer. In ModeParams it collects literal
// values in the order their placeholders are written.
type Printer struct {
	dialect *dialect.Dialect
	mode    Mode
	output  *bytes.Buffer
	args    []core.Value
}

func newPrinter(d *dialect.Dialect, mode Mode) *Printer {
	return &Printer{
		dialect: d,
		mode:    mode,
		output:  &bytes.Buffer{},
	}
}

// String returns the rendered text.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// keyword writes kw and, when the list is non-empty, a space before it.
func (p *Printer) keyword(kw string, count int) {
	p.write(kw)
	if count > 0 {
		p.space()
	}
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(sep)
		}
		format(i)
	}
}

// ident writes a name according to the dialect's quote policy.
func (p *Printer) ident(name string) {
	p.write(p.dialect.FormatIdentifier(name))
}

// value writes v inline or as the next placeholder.
func (p *Printer) value(v core.Value) {
	if p.mode == ModeInline {
		p.write(p.dialect.FormatValue(v))
		return
	}
	p.args = append(p.args, v)
	p.write(p.dialect.FormatPlaceholder(len(p.args)))
}
