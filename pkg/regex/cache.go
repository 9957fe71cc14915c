package regex

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type cacheKey struct {
	pattern string
	flags   Flag
}

// Cache holds compiled patterns keyed by pattern text and flags.
// Entries are only ever added; nothing is evicted or invalidated.
// A Cache is safe for concurrent use.
type Cache struct {
	entries map[cacheKey]*Regexp
	mu      sync.RWMutex
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMatchTimeout sets the per-match timeout applied to patterns compiled
// through the cache. Default is DefaultMatchTimeout.
func WithMatchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.timeout = d
	}
}

// WithCacheLogger sets the logger used for compile events.
func WithCacheLogger(logger *zap.SugaredLogger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[cacheKey]*Regexp),
		timeout: DefaultMatchTimeout,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns the cached pattern for (pattern, flags), compiling and
// storing it on first use. Compile errors are not cached.
func (c *Cache) Compile(pattern string, flags Flag) (*Regexp, error) {
	key := cacheKey{pattern: pattern, flags: flags}

	c.mu.RLock()
	re, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := compile(pattern, flags, c.timeout)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have stored it meanwhile; keep the first one.
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = re
	c.logger.Debugw("compiled pattern", "pattern", pattern, "flags", flags.String())
	return re, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
