// Package structsrc indexes source text by line and splits text on separators
// without breaking bracketed or quoted regions.
//
// # Positions
//
// Build a Source once per text and query it repeatedly:
//
//	src := structsrc.NewSource("let x = 1\nlet y = 2\n")
//	pos := src.IndexToPosition(14) // {Line: 2, Column: 4}
//	off, err := src.PositionToIndex(structsrc.Position{Line: 2, Column: 4})
//	if errors.Is(err, structsrc.ErrOutOfRange) {
//	    // no such line
//	}
//
// # Splitting
//
// Split drops separators; Explode keeps them according to a Mode:
//
//	parts, err := structsrc.Split("a,(b,c),d", ",")
//	// ["a", "(b,c)", "d"]
//
//	parts, err = structsrc.Explode("a,b", ",", structsrc.KeepSeparatorBack)
//	// ["a,", "b"]
//
// Separators given as strings match literally. Use NewLexerPattern for a
// regular expression separator.
package structsrc

import (
	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/lexer"
	"github.com/praetorian-inc/structsrc/pkg/regex"
	"github.com/praetorian-inc/structsrc/pkg/rule"
	"github.com/praetorian-inc/structsrc/pkg/source"
	"github.com/praetorian-inc/structsrc/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/structsrc" without subpackages.
type (
	// Source is a line index over one immutable text.
	Source = source.Source

	// Position is a 1-based line and 0-based column.
	Position = types.Position

	// Location is a half-open span of positions.
	Location = types.Location

	// Range is a half-open span of rune offsets.
	Range = types.Range

	// OutOfRangeError reports a line number with no entry in the index.
	OutOfRangeError = source.OutOfRangeError

	// Lexer splits text on a separator outside bracketed regions.
	Lexer = lexer.Lexer

	// Mode controls separator retention.
	Mode = lexer.Mode

	// Option configures a Lexer.
	Option = lexer.Option

	// PairSet is a set of bracket and quote pairs.
	PairSet = types.PairSet
)

// Re-export separator modes.
const (
	KeepSeparator      = lexer.KeepSeparator
	IgnoreSeparator    = lexer.IgnoreSeparator
	KeepSeparatorBack  = lexer.KeepSeparatorBack
	KeepSeparatorFront = lexer.KeepSeparatorFront
)

// ErrOutOfRange matches every OutOfRangeError with errors.Is.
var ErrOutOfRange = source.ErrOutOfRange

// patterns is shared by every lexer the package-level functions build.
var patterns = regex.NewCache()

// NewSource indexes text.
func NewSource(text string) *Source {
	return source.New(text)
}

// NewLexer creates a lexer splitting on the literal text sep.
// Compiled patterns are cached for the life of the process unless
// lexer.WithCache overrides the cache.
func NewLexer(sep string, opts ...Option) (*Lexer, error) {
	return lexer.NewFromString(sep, withSharedCache(opts)...)
}

// NewLexerPattern creates a lexer splitting on the regular expression pattern.
func NewLexerPattern(pattern string, opts ...Option) (*Lexer, error) {
	re, err := patterns.Compile(pattern, regex.NoFlags)
	if err != nil {
		return nil, err
	}
	return lexer.New(re, withSharedCache(opts)...)
}

// Split splits text on the literal sep, dropping separators and empty chunks.
func Split(text, sep string, opts ...Option) ([]string, error) {
	l, err := NewLexer(sep, opts...)
	if err != nil {
		return nil, err
	}
	return l.Split(text), nil
}

// Explode splits text on the literal sep, keeping separators as mode says.
func Explode(text, sep string, mode Mode, opts ...Option) ([]string, error) {
	l, err := NewLexer(sep, append(opts[:len(opts):len(opts)], lexer.WithMode(mode))...)
	if err != nil {
		return nil, err
	}
	return l.Explode(text), nil
}

// BuiltinPairSet returns one of the embedded pair sets: "default", "shell"
// or "markup".
func BuiltinPairSet(id string) (*PairSet, error) {
	ps, err := rule.NewLoader().Builtin(id)
	if err != nil {
		return nil, errors.Wrap(err, "loading pair set")
	}
	return ps, nil
}

func withSharedCache(opts []Option) []Option {
	return append([]Option{lexer.WithCache(patterns)}, opts...)
}
