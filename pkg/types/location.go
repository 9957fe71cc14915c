package types

import "fmt"

// Range is a rune offset range [Start, End) - half-open interval.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers zero runes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset falls within [Start, End).
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Position is a line:column position.
// Line is 1-based, Column is a 0-based rune offset from the start of the line.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a start-end line:column span, half-open like Range.
type Location struct {
	Start Position
	End   Position
}

func (l Location) String() string {
	return l.Start.String() + "-" + l.End.String()
}
