// Package diag carries the diagnostics of a compilation run: the numeric
// codes with their descriptions, the collector every analyzer reports into,
// and the listing that interleaves the echoed source with the diagnostics.
package diag

import (
	"fmt"
	"slices"

	"github.com/pacer/pascheck/internal/pascal/source"
)

// Diagnostic is a single (position, code) event.
// Width is the length of the offending lexeme, at least 1.
type Diagnostic struct {
	Pos   source.Position `json:"position" yaml:"position"`
	Code  Code            `json:"code" yaml:"code"`
	Width int             `json:"width" yaml:"width"`
}

func (d Diagnostic) GetError() string {
	return d.Code.Description()
}

func (d Diagnostic) GetPosition() source.Position {
	return d.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: ошибка код %d: %s", d.Pos, d.Code, d.Code.Description())
}

// Collector accumulates diagnostics for one run. It never aborts the run.
type Collector struct {
	items []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

// Report records a diagnostic.
func (c *Collector) Report(pos source.Position, code Code, width int) {
	if width < 1 {
		width = 1
	}

	c.items = append(c.items, Diagnostic{Pos: pos, Code: code, Width: width})
}

func (c *Collector) Len() int {
	return len(c.items)
}

// All returns a copy of the diagnostics in report order.
func (c *Collector) All() []Diagnostic {
	return slices.Clone(c.items)
}

// From returns the diagnostics reported after the first n ones.
func (c *Collector) From(n int) []Diagnostic {
	if n >= len(c.items) {
		return nil
	}

	return c.items[n:]
}

// Count returns how many diagnostics carry the given code.
func (c *Collector) Count(code Code) int {
	count := 0
	for _, d := range c.items {
		if d.Code == code {
			count++
		}
	}

	return count
}

func (c *Collector) Has(code Code) bool {
	return c.Count(code) > 0
}

// Codes returns the codes in report order.
func (c *Collector) Codes() []Code {
	codes := make([]Code, 0, len(c.items))
	for _, d := range c.items {
		codes = append(codes, d.Code)
	}

	return codes
}
