package regex

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// MatchMode selects between a single leftmost match and all matches.
type MatchMode int

const (
	// First returns the leftmost match with its capture groups as values.
	First MatchMode = iota
	// Global returns the text of every non-overlapping match as values.
	Global
)

// Result is a match (or, in Global mode, a set of matches).
// Offsets are rune offsets into the searched input.
type Result struct {
	Index  int      // start of the (first) match
	End    int      // end of the (last) match, exclusive
	Values []string // group values for First, whole matches for Global
}

// Group returns value i, if present. Group 0 is the whole match in First mode.
func (r *Result) Group(i int) (string, bool) {
	if i < 0 || i >= len(r.Values) {
		return "", false
	}
	return r.Values[i], true
}

// Len returns the number of values.
func (r *Result) Len() int {
	return len(r.Values)
}

// Length returns End - Index.
func (r *Result) Length() int {
	return r.End - r.Index
}

func (r *Result) String() string {
	return fmt.Sprintf("<regex.Result index: %d, end: %d, values: %q>", r.Index, r.End, r.Values)
}

// newResult converts a regexp2 match, keeping every numbered group.
// Groups that did not participate in the match yield "".
func newResult(m *regexp2.Match) *Result {
	groups := m.Groups()
	values := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) > 0 {
			values[i] = g.Captures[len(g.Captures)-1].String()
		}
	}
	return &Result{
		Index:  m.Index,
		End:    m.Index + m.Length,
		Values: values,
	}
}
