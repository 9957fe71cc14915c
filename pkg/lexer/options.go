package lexer

import (
	"strings"

	"github.com/praetorian-inc/structsrc/pkg/regex"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"go.uber.org/zap"
)

// Option configures a Lexer.
type Option func(*config)

type config struct {
	pairs  *types.PairSet
	mode   Mode
	trim   func(string) string
	cache  *regex.Cache
	logger *zap.SugaredLogger
}

func defaultConfig() *config {
	return &config{
		pairs:  types.DefaultPairSet(),
		mode:   KeepSeparator,
		logger: zap.NewNop().Sugar(),
	}
}

// WithPairSet sets the bracket and quote pairs the lexer protects.
// Default: types.DefaultPairSet().
func WithPairSet(ps *types.PairSet) Option {
	return func(c *config) {
		if ps != nil {
			c.pairs = ps
		}
	}
}

// WithMode sets the separator retention mode. Default: KeepSeparator.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithTrim strips any of the runes in cutset from both ends of every chunk.
func WithTrim(cutset string) Option {
	return func(c *config) {
		c.trim = func(s string) string {
			return strings.Trim(s, cutset)
		}
	}
}

// WithTrimSpace strips surrounding Unicode white space from every chunk.
func WithTrimSpace() Option {
	return func(c *config) {
		c.trim = strings.TrimSpace
	}
}

// WithTrimPattern strips leading and trailing repetitions of the literal
// text pattern from every chunk.
func WithTrimPattern(pattern string) Option {
	return func(c *config) {
		c.trim = func(s string) string {
			out, err := regex.TrimPattern(s, pattern)
			if err != nil {
				return s
			}
			return out
		}
	}
}

// WithCache compiles the lexer's patterns through cache.
func WithCache(cache *regex.Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
