package regex

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCache_ReusesEntries(t *testing.T) {
	c := NewCache()

	a, err := c.Compile(`\d+`, NoFlags)
	require.NoError(t, err)
	b, err := c.Compile(`\d+`, NoFlags)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())
}

func TestCache_KeyIncludesFlags(t *testing.T) {
	c := NewCache()

	a, err := c.Compile(`abc`, NoFlags)
	require.NoError(t, err)
	b, err := c.Compile(`abc`, IgnoreCase)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, c.Len())
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c := NewCache()

	_, err := c.Compile(`(`, NoFlags)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCache_MatchTimeout(t *testing.T) {
	c := NewCache(WithMatchTimeout(time.Second))

	re, err := c.Compile(`a+`, NoFlags)
	require.NoError(t, err)
	assert.Equal(t, time.Second, re.re.MatchTimeout)
}

func TestCache_Logger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCache(WithCacheLogger(zap.New(core).Sugar()))

	_, err := c.Compile(`x`, IgnoreCase)
	require.NoError(t, err)
	_, err = c.Compile(`x`, IgnoreCase)
	require.NoError(t, err)

	entries := logs.FilterMessage("compiled pattern").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "i", entries[0].ContextMap()["flags"])
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	patterns := []string{`a`, `b+`, `[cd]`, `(e)(f)`}

	var wg sync.WaitGroup
	results := make([][]*Regexp, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, p := range patterns {
				re, err := c.Compile(p, NoFlags)
				assert.NoError(t, err)
				results[i] = append(results[i], re)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(patterns), c.Len())
	for i := 1; i < len(results); i++ {
		for j := range patterns {
			assert.Same(t, results[0][j], results[i][j])
		}
	}
}
