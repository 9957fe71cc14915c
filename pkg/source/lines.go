package source

import (
	"iter"

	"github.com/praetorian-inc/structsrc/pkg/types"
)

// Line is one line of a Source.
type Line struct {
	Number     int         // 1-based
	Text       string      // content without the terminator
	Range      types.Range // offsets of Text
	Terminator string      // "" for an unterminated final line
}

// Lines yields every line in order. The sequence is lazy and can be ranged
// over more than once.
func (s *Source) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := range s.lineStarts {
			if !yield(s.line(i)) {
				return
			}
		}
	}
}

// LineText returns the content of a 1-based line without its terminator.
func (s *Source) LineText(line int) (string, error) {
	if line < 1 || line > len(s.lineStarts) {
		return "", &OutOfRangeError{Line: line, Lines: len(s.lineStarts)}
	}
	return s.line(line - 1).Text, nil
}

// line builds the record for the zero-based line index i.
func (s *Source) line(i int) Line {
	start := s.lineStarts[i]
	if i+1 == len(s.lineStarts) {
		return Line{
			Number: i + 1,
			Text:   string(s.runes[start:]),
			Range:  types.Range{Start: start, End: len(s.runes)},
		}
	}

	next := s.lineStarts[i+1]
	end := next - 1
	if end-1 >= start && s.runes[end-1] == types.CarriageReturn && s.runes[end] == types.LineFeed {
		end--
	}
	return Line{
		Number:     i + 1,
		Text:       string(s.runes[start:end]),
		Range:      types.Range{Start: start, End: end},
		Terminator: string(s.runes[end:next]),
	}
}
