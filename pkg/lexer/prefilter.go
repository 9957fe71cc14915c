package lexer

import (
	"github.com/cloudflare/ahocorasick"
)

// tokenFilter reports whether a text contains any pair token at all.
type tokenFilter struct {
	matcher *ahocorasick.Matcher
}

func newTokenFilter(tokens []string) *tokenFilter {
	if len(tokens) == 0 {
		return &tokenFilter{}
	}
	return &tokenFilter{matcher: ahocorasick.NewStringMatcher(tokens)}
}

// mayContain returns false only when text holds none of the tokens.
// Contains does not mutate the matcher, so one filter serves concurrent calls.
func (f *tokenFilter) mayContain(text string) bool {
	if f.matcher == nil {
		return false
	}
	return f.matcher.Contains([]byte(text))
}
