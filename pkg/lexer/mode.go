package lexer

// Mode controls what happens to separator text when a chunk is split off.
type Mode int

const (
	// KeepSeparator emits each separator as its own chunk.
	KeepSeparator Mode = iota
	// IgnoreSeparator drops separators. Split uses this mode.
	IgnoreSeparator
	// KeepSeparatorBack appends the separator to the preceding chunk.
	KeepSeparatorBack
	// KeepSeparatorFront leaves the separator at the head of the following chunk.
	KeepSeparatorFront
)

func (m Mode) String() string {
	switch m {
	case KeepSeparator:
		return "keep"
	case IgnoreSeparator:
		return "ignore"
	case KeepSeparatorBack:
		return "keep-back"
	case KeepSeparatorFront:
		return "keep-front"
	default:
		return "unknown"
	}
}
