package source

import "fmt"

// Position locates a character of the source text.
// Line and Column are both 1-based; the zero value means "no position".
type Position struct {
	Line   int
	Column int
}

func (p Position) IsEmpty() bool {
	return p.Line == 0 && p.Column == 0
}

// Offset returns a new Position with the column offset by delta.
func (p Position) Offset(delta int) Position {
	return Position{
		Line:   p.Line,
		Column: p.Column + delta,
	}
}

// Before reports whether p comes strictly before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Column < other.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
