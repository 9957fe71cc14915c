// Package source maps between flat rune offsets and line:column positions
// for a single immutable text.
//
// Offsets count runes, not bytes. Lines are 1-based and columns are 0-based.
// Recognized line terminators are LF, CR, CRLF (one terminator), U+2028 and
// U+2029.
//
// A Source is read-only after New returns and may be shared between goroutines.
package source

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/types"
)

// Source indexes the line starts of one text.
type Source struct {
	text       string
	runes      []rune
	lineStarts []int // strictly increasing, lineStarts[0] == 0
}

// New scans text once and builds its line-start table.
func New(text string) *Source {
	runes := []rune(text)
	starts := make([]int, 1, 1+len(runes)/32)

	for i := 0; i < len(runes); {
		n := types.TerminatorAt(runes, i)
		if n == 0 {
			i++
			continue
		}
		i += n
		// i <= len(runes) here; a terminator at end of text starts an empty final line
		starts = append(starts, i)
	}

	return &Source{
		text:       text,
		runes:      runes,
		lineStarts: starts,
	}
}

// Text returns the indexed text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the text in runes.
func (s *Source) Len() int {
	return len(s.runes)
}

// Line returns the number of lines. An empty text has one line.
func (s *Source) Line() int {
	return len(s.lineStarts)
}

// LineStarts returns a copy of the line-start table.
func (s *Source) LineStarts() []int {
	starts := make([]int, len(s.lineStarts))
	copy(starts, s.lineStarts)
	return starts
}

// PositionToIndex converts a position to a rune offset.
// Columns are not checked against the line length: a column past the end of
// the line (or of the text) yields an extrapolated offset.
func (s *Source) PositionToIndex(pos types.Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(s.lineStarts) {
		return 0, &OutOfRangeError{Line: pos.Line, Lines: len(s.lineStarts)}
	}
	return s.lineStarts[pos.Line-1] + pos.Column, nil
}

// IndexToPosition converts a rune offset to a position. It never fails:
// an offset on a line boundary belongs to the later line, offsets past the
// end extrapolate on the last line and negative offsets extrapolate on line 1.
func (s *Source) IndexToPosition(offset int) types.Position {
	line := UpperBound(s.lineStarts, offset)
	if line == 0 {
		line = 1
	}
	return types.Position{
		Line:   line,
		Column: offset - s.lineStarts[line-1],
	}
}

// RangeToLocation converts both ends of r with IndexToPosition.
func (s *Source) RangeToLocation(r types.Range) types.Location {
	return types.Location{
		Start: s.IndexToPosition(r.Start),
		End:   s.IndexToPosition(r.End),
	}
}

// LocationToRange converts both ends of loc with PositionToIndex.
func (s *Source) LocationToRange(loc types.Location) (types.Range, error) {
	start, err := s.PositionToIndex(loc.Start)
	if err != nil {
		return types.Range{}, errors.Wrap(err, "location start")
	}
	end, err := s.PositionToIndex(loc.End)
	if err != nil {
		return types.Range{}, errors.Wrap(err, "location end")
	}
	return types.Range{Start: start, End: end}, nil
}

// Slice returns the text covered by r, clamped to the bounds of the source.
func (s *Source) Slice(r types.Range) string {
	start := clamp(r.Start, 0, len(s.runes))
	end := clamp(r.End, 0, len(s.runes))
	if start >= end {
		return ""
	}
	return string(s.runes[start:end])
}

// UpperBound returns the number of entries in sorted that are <= v.
func UpperBound(sorted []int, v int) int {
	return sort.Search(len(sorted), func(i int) bool {
		return sorted[i] > v
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
