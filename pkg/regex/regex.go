// Package regex is a thin convenience layer over github.com/dlclark/regexp2.
//
// All offsets are rune offsets. Compiled patterns are immutable and safe for
// concurrent use; global matching is chosen per call rather than stored on
// the pattern.
package regex

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single match to guard against catastrophic backtracking.
const DefaultMatchTimeout = 5 * time.Second

// Regexp is a compiled pattern.
type Regexp struct {
	pattern string
	flags   Flag
	re      *regexp2.Regexp
}

// Compile compiles pattern with flags. Invalid patterns are reported here,
// never at match time.
func Compile(pattern string, flags Flag) (*Regexp, error) {
	return compile(pattern, flags, DefaultMatchTimeout)
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, flags Flag) *Regexp {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic(err)
	}
	return re
}

func compile(pattern string, flags Flag, timeout time.Duration) (*Regexp, error) {
	re, err := regexp2.Compile(pattern, flags.options())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile pattern %q", pattern)
	}
	re.MatchTimeout = timeout
	return &Regexp{
		pattern: pattern,
		flags:   flags,
		re:      re,
	}, nil
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// Flags returns the flags the pattern was compiled with.
func (re *Regexp) Flags() Flag {
	return re.flags
}

// Test reports whether the pattern matches input at or after offset.
func (re *Regexp) Test(input string, offset int) (bool, error) {
	runes := []rune(input)
	if offset < 0 || offset > len(runes) {
		return false, nil
	}
	m, err := re.re.FindRunesMatchStartingAt(runes, offset)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// Match searches input starting at offset. It returns nil when there is no
// match or offset is not inside input.
func (re *Regexp) Match(input string, offset int, mode MatchMode) (*Result, error) {
	runes := []rune(input)
	if mode == Global {
		return re.matchGlobal(runes, offset)
	}
	return re.MatchRunes(runes, offset)
}

// MatchRunes returns the leftmost match in r at or after offset.
func (re *Regexp) MatchRunes(r []rune, offset int) (*Result, error) {
	if offset < 0 || offset >= len(r) {
		return nil, nil
	}
	m, err := re.re.FindRunesMatchStartingAt(r, offset)
	if err != nil || m == nil {
		return nil, err
	}
	return newResult(m), nil
}

// MatchRunesNonEmpty is MatchRunes but skips zero-length matches.
func (re *Regexp) MatchRunesNonEmpty(r []rune, offset int) (*Result, error) {
	if offset < 0 || offset >= len(r) {
		return nil, nil
	}
	m, err := re.re.FindRunesMatchStartingAt(r, offset)
	for err == nil && m != nil && m.Length == 0 {
		m, err = re.re.FindNextMatch(m)
	}
	if err != nil || m == nil {
		return nil, err
	}
	return newResult(m), nil
}

func (re *Regexp) matchGlobal(r []rune, offset int) (*Result, error) {
	all, err := re.findAll(r, offset)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	res := &Result{
		Index:  all[0].Index,
		Values: make([]string, 0, len(all)),
	}
	for _, m := range all {
		if m.End > res.End {
			res.End = m.End
		}
		res.Values = append(res.Values, m.Values[0])
	}
	return res, nil
}

// FindAll returns every non-overlapping match at or after offset.
func (re *Regexp) FindAll(input string, offset int) ([]*Result, error) {
	return re.findAll([]rune(input), offset)
}

func (re *Regexp) findAll(r []rune, offset int) ([]*Result, error) {
	if offset < 0 || offset >= len(r) {
		return nil, nil
	}
	var results []*Result
	m, err := re.re.FindRunesMatchStartingAt(r, offset)
	for err == nil && m != nil {
		results = append(results, newResult(m))
		m, err = re.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Replace substitutes every match at or after offset with template.
// The template may reference groups as $1, ${1} or ${name}.
func (re *Regexp) Replace(input, template string, offset int) (string, error) {
	if offset < 0 || offset > len([]rune(input)) {
		return input, nil
	}
	return re.re.Replace(input, template, offset, -1)
}

// ReplaceFunc substitutes every match at or after offset with fn's result.
func (re *Regexp) ReplaceFunc(input string, offset int, fn func(*Result) string) (string, error) {
	if offset < 0 || offset > len([]rune(input)) {
		return input, nil
	}
	return re.re.ReplaceFunc(input, func(m regexp2.Match) string {
		return fn(newResult(&m))
	}, offset, -1)
}

// Split splits input at every separator match found at or after offset,
// dropping the separators and any empty pieces. Input with no match is
// returned whole. Brackets and quotes are not considered; see package lexer.
func (re *Regexp) Split(input string, offset int) ([]string, error) {
	runes := []rune(input)
	matches, err := re.findAll(runes, offset)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []string{input}, nil
	}

	parts := make([]string, 0, len(matches)+1)
	last := 0
	for _, m := range matches {
		if m.Index > last {
			parts = append(parts, string(runes[last:m.Index]))
		}
		if m.End > last {
			last = m.End
		}
	}
	if last < len(runes) {
		parts = append(parts, string(runes[last:]))
	}
	return parts, nil
}

// Escape quotes every metacharacter in s so it matches literally.
func Escape(s string) string {
	return regexp2.Escape(s)
}

// Slice returns the runes of s in [start, end). Negative indexes count from
// the end of s; out-of-range indexes are clamped.
func Slice(s string, start, end int) string {
	runes := []rune(s)
	n := len(runes)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// TrimPattern removes leading and trailing repetitions of the literal text
// pattern from s. An empty pattern trims surrounding Unicode white space.
func TrimPattern(s, pattern string) (string, error) {
	if pattern == "" {
		return strings.TrimSpace(s), nil
	}
	quoted := "(?:" + Escape(pattern) + ")+"
	leading, err := Compile("^"+quoted, NoFlags)
	if err != nil {
		return "", err
	}
	trailing, err := Compile(quoted+`\z`, NoFlags)
	if err != nil {
		return "", err
	}
	s, err = leading.Replace(s, "", 0)
	if err != nil {
		return "", err
	}
	return trailing.Replace(s, "", 0)
}
