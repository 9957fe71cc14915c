package types

import (
	"sort"
	"unicode/utf8"
)

// Pair is an opening token and the token that closes it.
// Quote-like pairs use the same token for both.
type Pair struct {
	Open  string
	Close string
}

// PairSet is a named set of bracket/quote pairs with an optional escape rune.
type PairSet struct {
	ID          string // e.g., "default"
	Name        string // human-readable name
	Description string // optional
	Escape      string // single rune; a token preceded by an odd run of it is inert
	Pairs       []Pair
}

// DefaultPairSet returns ( ) [ ] { } " " ' ' escaped with a backslash.
func DefaultPairSet() *PairSet {
	return &PairSet{
		ID:     "default",
		Name:   "Brackets and quotes",
		Escape: `\`,
		Pairs: []Pair{
			{Open: "(", Close: ")"},
			{Open: "[", Close: "]"},
			{Open: "{", Close: "}"},
			{Open: `"`, Close: `"`},
			{Open: "'", Close: "'"},
		},
	}
}

// Closer returns the token that closes open.
func (ps *PairSet) Closer(open string) (string, bool) {
	for _, p := range ps.Pairs {
		if p.Open == open {
			return p.Close, true
		}
	}
	return "", false
}

// Tokens returns every distinct opening and closing token, longest first so
// that an alternation built from them prefers multi-rune tokens.
func (ps *PairSet) Tokens() []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, p := range ps.Pairs {
		for _, tok := range []string{p.Open, p.Close} {
			if tok != "" && !seen[tok] {
				seen[tok] = true
				tokens = append(tokens, tok)
			}
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(tokens[i]), utf8.RuneCountInString(tokens[j])
		if li != lj {
			return li > lj
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}
