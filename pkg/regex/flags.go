package regex

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"
)

// Flag selects regex engine modes. Flags are fixed at compile time.
type Flag uint8

const (
	IgnoreCase Flag = 1 << iota // i: case-insensitive matching
	Multiline                   // m: ^ and $ match at line boundaries
	DotAll                      // s: . matches line terminators

	NoFlags Flag = 0
)

// ParseFlags parses a flag string such as "im".
// Global matching is not a flag; pass Global to Match instead.
func ParseFlags(s string) (Flag, error) {
	var f Flag
	for _, c := range s {
		switch c {
		case 'i':
			f |= IgnoreCase
		case 'm':
			f |= Multiline
		case 's':
			f |= DotAll
		case 'g':
			return 0, errors.Newf("unsupported flag %q: global matching is selected per call with regex.Global", c)
		default:
			return 0, errors.Newf("unsupported flag %q in %q", c, s)
		}
	}
	return f, nil
}

// String returns the flags in "ims" order.
func (f Flag) String() string {
	var b strings.Builder
	if f&IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&Multiline != 0 {
		b.WriteByte('m')
	}
	if f&DotAll != 0 {
		b.WriteByte('s')
	}
	return b.String()
}

func (f Flag) options() regexp2.RegexOptions {
	opts := regexp2.None
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}
	return opts
}
