package types

// Line terminators recognized when indexing source text.
const (
	LineFeed           = '\n'
	CarriageReturn     = '\r'
	LineSeparator      = '\u2028'
	ParagraphSeparator = '\u2029'
)

// IsLineTerminator reports whether r ends a line on its own.
// A carriage return followed by a line feed is handled by TerminatorAt.
func IsLineTerminator(r rune) bool {
	switch r {
	case LineFeed, CarriageReturn, LineSeparator, ParagraphSeparator:
		return true
	}
	return false
}

// TerminatorAt returns the length in runes of the line terminator starting at
// text[i], or 0 if there is none. CRLF counts as a single two-rune terminator.
func TerminatorAt(text []rune, i int) int {
	if i < 0 || i >= len(text) || !IsLineTerminator(text[i]) {
		return 0
	}
	if text[i] == CarriageReturn && i+1 < len(text) && text[i+1] == LineFeed {
		return 2
	}
	return 1
}
