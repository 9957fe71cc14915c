// Package lexer splits text on a separator pattern without splitting inside
// bracketed or quoted regions.
//
// A Lexer holds only immutable configuration; every Explode call keeps its
// own stack and cursor, so one Lexer may be used from many goroutines.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/regex"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"go.uber.org/zap"
)

// Lexer is a compiled separator plus the pair set it must respect.
type Lexer struct {
	sep    *regex.Regexp
	pairRe *regex.Regexp
	pairs  *types.PairSet
	filter *tokenFilter
	mode   Mode
	trim   func(string) string
	logger *zap.SugaredLogger
}

// New creates a lexer that splits on sep.
// It fails when the pair set is invalid or its token pattern does not compile.
func New(sep *regex.Regexp, opts ...Option) (*Lexer, error) {
	if sep == nil {
		return nil, errors.New("separator pattern is nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newLexer(sep, cfg)
}

// NewFromString creates a lexer that splits on the literal text sep.
func NewFromString(sep string, opts ...Option) (*Lexer, error) {
	if sep == "" {
		return nil, errors.New("separator is empty")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	re, err := compileWith(cfg.cache, regex.Escape(sep))
	if err != nil {
		return nil, err
	}
	return newLexer(re, cfg)
}

func newLexer(sep *regex.Regexp, cfg *config) (*Lexer, error) {
	tokens := cfg.pairs.Tokens()
	if len(tokens) == 0 {
		return nil, errors.Newf("pair set %q has no tokens", cfg.pairs.ID)
	}

	pairRe, err := compileWith(cfg.cache, pairPattern(cfg.pairs.Escape, tokens))
	if err != nil {
		return nil, errors.Wrapf(err, "pair set %q", cfg.pairs.ID)
	}

	return &Lexer{
		sep:    sep,
		pairRe: pairRe,
		pairs:  cfg.pairs,
		filter: newTokenFilter(tokens),
		mode:   cfg.mode,
		trim:   cfg.trim,
		logger: cfg.logger,
	}, nil
}

func compileWith(cache *regex.Cache, pattern string) (*regex.Regexp, error) {
	if cache != nil {
		return cache.Compile(pattern, regex.NoFlags)
	}
	return regex.Compile(pattern, regex.NoFlags)
}

// pairPattern matches a run of escape runes followed by one pair token.
// Group 1 is the run, group 2 the token.
func pairPattern(escape string, tokens []string) string {
	alts := make([]string, len(tokens))
	for i, tok := range tokens {
		alts[i] = regex.Escape(tok)
	}
	run := "()"
	if escape != "" {
		run = "((?:" + regex.Escape(escape) + ")*)"
	}
	return run + "(" + strings.Join(alts, "|") + ")"
}

// Mode returns the separator retention mode.
func (l *Lexer) Mode() Mode {
	return l.mode
}

// Separator returns the separator pattern.
func (l *Lexer) Separator() *regex.Regexp {
	return l.sep
}

// Split splits text dropping the separators.
func (l *Lexer) Split(text string) []string {
	return l.explode(text, IgnoreSeparator)
}

// Explode splits text using the lexer's mode.
func (l *Lexer) Explode(text string) []string {
	return l.explode(text, l.mode)
}

type state int

const (
	scanning state = iota
	// recovering: an open region never closes; find a fresh token to restart from.
	recovering
	// degraded: nesting is unrecoverable; split on separators only.
	degraded
)

func (s state) String() string {
	switch s {
	case scanning:
		return "scanning"
	case recovering:
		return "recovering"
	case degraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// scan is the per-call working state.
type scan struct {
	*Lexer
	mode   Mode
	code   []rune   // unconsumed text
	stack  []string // expected closers, innermost last
	offset int      // search cursor into code
	head   int      // length of a separator carried at the front of code
	floor  int      // recovery never searches before this
	state  state
	out    []string
}

func (l *Lexer) explode(text string, mode Mode) []string {
	s := &scan{
		Lexer: l,
		mode:  mode,
		code:  []rune(text),
	}
	if !l.filter.mayContain(text) {
		l.logger.Debugw("no pair tokens in text, splitting on separator only", "pair_set", l.pairs.ID)
		s.state = degraded
	}
	s.run()
	return s.out
}

func (s *scan) run() {
	for len(s.code) > 0 && s.offset < len(s.code) {
		sm := s.separator()
		if sm == nil && (len(s.stack) == 0 || s.state == degraded) {
			break
		}

		if s.state == scanning {
			if pm := s.pairToken(s.offset); pm != nil {
				if len(s.stack) > 0 || sm == nil || pm.Index < sm.Index {
					s.offset = pm.End
					if s.token(pm) {
						continue
					}
				}
			} else if len(s.stack) > 0 {
				s.transition(recovering)
				if !s.recover() {
					break
				}
				continue
			}
		}

		if sm == nil {
			break
		}
		s.cut(sm)
	}

	if len(s.code) > 0 {
		s.emit(string(s.code))
	}
}

// token applies one live-or-escaped pair token. It reports whether the
// scan should continue without splitting.
func (s *scan) token(pm *regex.Result) bool {
	if utf8.RuneCountInString(pm.Values[1])%2 == 1 {
		return true
	}
	tok := pm.Values[2]

	if n := len(s.stack); n > 0 && s.stack[n-1] == tok {
		s.stack = s.stack[:n-1]
		return true
	}
	if closer, ok := s.pairs.Closer(tok); ok {
		s.stack = append(s.stack, closer)
		return true
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i] == tok {
			s.stack = s.stack[:i]
			return true
		}
	}
	if len(s.stack) > 0 {
		s.transition(degraded)
		s.stack = nil
		s.offset = s.head
		return true
	}

	// A stray closer outside any region is ordinary text.
	return false
}

// recover clears the stack and resumes after the first live token at or
// past the floor. It returns false when no such token exists.
func (s *scan) recover() bool {
	for at := s.floor; at < len(s.code); {
		pm := s.pairToken(at)
		if pm == nil {
			return false
		}
		if utf8.RuneCountInString(pm.Values[1])%2 == 0 {
			s.stack = nil
			s.offset = pm.End
			s.floor = pm.End
			s.transition(scanning)
			return true
		}
		at = pm.End
	}
	return false
}

// cut splits code at the separator match sm.
func (s *scan) cut(sm *regex.Result) {
	chunk := string(s.code[:sm.Index])
	sep := string(s.code[sm.Index:sm.End])

	switch s.mode {
	case KeepSeparator:
		s.emit(chunk)
		s.emit(sep)
		s.advance(sm.End, 0)
	case IgnoreSeparator:
		s.emit(chunk)
		s.advance(sm.End, 0)
	case KeepSeparatorBack:
		if sm.Index > 0 {
			s.emit(chunk)
		}
		if n := len(s.out); n > 0 {
			s.out[n-1] += s.trimmed(sep)
		} else {
			s.emit(sep)
		}
		s.advance(sm.End, 0)
	case KeepSeparatorFront:
		s.emit(chunk)
		s.advance(sm.Index, sm.Length())
	}
}

// advance drops the first n runes of code. The next head runes are a
// carried separator and are not searched again.
func (s *scan) advance(n, head int) {
	s.code = s.code[n:]
	s.offset = head
	s.head = head
	s.floor = head
	s.stack = nil
}

func (s *scan) emit(chunk string) {
	if chunk = s.trimmed(chunk); chunk != "" {
		s.out = append(s.out, chunk)
	}
}

func (s *scan) trimmed(chunk string) string {
	if s.trim != nil {
		return s.trim(chunk)
	}
	return chunk
}

func (s *scan) separator() *regex.Result {
	m, err := s.sep.MatchRunesNonEmpty(s.code, s.offset)
	if err != nil {
		s.logger.Warnw("separator match failed, skipping", "pattern", s.sep.String(), "error", err)
		return nil
	}
	return m
}

func (s *scan) pairToken(at int) *regex.Result {
	m, err := s.pairRe.MatchRunes(s.code, at)
	if err != nil {
		s.logger.Warnw("pair token match failed, skipping", "pair_set", s.pairs.ID, "error", err)
		return nil
	}
	return m
}

func (s *scan) transition(to state) {
	if s.state == to {
		return
	}
	s.logger.Debugw("lexer state change",
		"from", s.state.String(),
		"to", to.String(),
		"offset", s.offset,
		"depth", len(s.stack),
	)
	s.state = to
}
