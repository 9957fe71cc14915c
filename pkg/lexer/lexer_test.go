package lexer

import (
	"sync"
	"testing"

	"github.com/praetorian-inc/structsrc/pkg/regex"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustLexer(t *testing.T, sep string, opts ...Option) *Lexer {
	t.Helper()
	l, err := NewFromString(sep, opts...)
	require.NoError(t, err)
	return l
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"no separator no tokens", "hello world", []string{"hello world"}},
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"parentheses protect", "a,(b,c),d", []string{"a", "(b,c)", "d"}},
		{"nested", "f(a,[b,c]),g", []string{"f(a,[b,c])", "g"}},
		{"quotes protect", `x,"a,b",'c,d'`, []string{"x", `"a,b"`, `'c,d'`}},
		{"empty chunks dropped", ",,a,,", []string{"a"}},
		{"only separators", ",,,", nil},
		{"empty input", "", nil},
		{"stray closer outside region", "a,b)", []string{"a", "b)"}},
		{"unclosed opener recovers", "(a,b", []string{"(a", "b"}},
		{"mismatched closer keeps remainder", "x,(a]b", []string{"x", "(a]b"}},
		{"outer closer force-closes inner", "{a(b},c", []string{"{a(b}", "c"}},
		{"unicode", "é,(ü,ö),ß", []string{"é", "(ü,ö)", "ß"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLexer(t, ",")
			assert.Equal(t, tt.want, l.Split(tt.input))
		})
	}
}

func TestSplit_Escapes(t *testing.T) {
	l := mustLexer(t, ",")

	// \" does not close the region
	assert.Equal(t, []string{`"a\",b"`, "c"}, l.Split(`"a\",b",c`))

	// \\" is an escaped backslash followed by a live quote
	assert.Equal(t, []string{`"a\\"`, "b"}, l.Split(`"a\\",b`))

	// \( does not open a region
	assert.Equal(t, []string{"x", `\(y`, "z"}, l.Split(`x,\(y,z`))
}

func TestSplit_Degraded(t *testing.T) {
	l := mustLexer(t, ",")

	assert.Equal(t, []string{"[a)b", "c"}, l.Split("[a)b,c"))

	// Once degraded, later brackets no longer protect separators
	assert.Equal(t, []string{"[a)", "b", "(c", "d)"}, l.Split("[a),b,(c,d)"))
}

func TestSplit_RecoveryTerminates(t *testing.T) {
	l := mustLexer(t, ",")

	assert.Equal(t, []string{"(a(b", "c"}, l.Split("(a(b,c"))
	assert.Equal(t, []string{"((a", "b"}, l.Split("((a,b"))
}

func TestSplit_UnmatchedCloserNoOpener(t *testing.T) {
	l := mustLexer(t, ",")

	assert.Equal(t, []string{"a)b]c"}, l.Split("a)b]c"))
	assert.Equal(t, []string{"(a]b"}, l.Split("(a]b"))
}

func TestExplode_Modes(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		input string
		want  []string
	}{
		{"keep", KeepSeparator, "a,b,c", []string{"a", ",", "b", ",", "c"}},
		{"ignore", IgnoreSeparator, "a,b,c", []string{"a", "b", "c"}},
		{"back", KeepSeparatorBack, "a,b,c", []string{"a,", "b,", "c"}},
		{"back leading separator", KeepSeparatorBack, ",a", []string{",", "a"}},
		{"back consecutive separators", KeepSeparatorBack, "a,,b", []string{"a,,", "b"}},
		{"front", KeepSeparatorFront, "a,b,c", []string{"a", ",b", ",c"}},
		{"front leading separator", KeepSeparatorFront, ",a,b", []string{",a", ",b"}},
		{"front with brackets", KeepSeparatorFront, "a,(b,c),d", []string{"a", ",(b,c)", ",d"}},
		{"keep with brackets", KeepSeparator, "(a,b),c", []string{"(a,b)", ",", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLexer(t, ",", WithMode(tt.mode))
			assert.Equal(t, tt.mode, l.Mode())
			assert.Equal(t, tt.want, l.Explode(tt.input))
		})
	}
}

func TestSplit_IgnoresConfiguredMode(t *testing.T) {
	l := mustLexer(t, ",", WithMode(KeepSeparator))
	assert.Equal(t, []string{"a", "b"}, l.Split("a,b"))
}

func TestTrim(t *testing.T) {
	l := mustLexer(t, ",", WithTrimSpace())
	assert.Equal(t, []string{"a", "(b, c)", "d"}, l.Split("  a , (b, c) ,  , d  "))
	assert.Equal(t, []string{"hi"}, l.Split("  hi  "))

	l = mustLexer(t, ";", WithTrim("* "))
	assert.Equal(t, []string{"a", "b"}, l.Split("* a *; **b"))

	l = mustLexer(t, ",", WithTrimPattern("--"))
	assert.Equal(t, []string{"a", "b-"}, l.Split("----a--,--b-"))
}

func TestSeparatorPattern(t *testing.T) {
	l, err := New(regex.MustCompile(`\s*;\s*`, regex.NoFlags))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "f(b; c)", "d"}, l.Split("a ;f(b; c);  d"))
	assert.Equal(t, `\s*;\s*`, l.Separator().String())
}

func TestSeparatorPattern_ZeroLengthMatchesIgnored(t *testing.T) {
	l, err := New(regex.MustCompile(`,*`, regex.NoFlags))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.Split("a,,b"))

	l, err = New(regex.MustCompile(`\b`, regex.NoFlags))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab cd"}, l.Split("ab cd"))
}

func TestNewFromString_Literal(t *testing.T) {
	l := mustLexer(t, ".")
	assert.Equal(t, []string{"a", "b", "c"}, l.Split("a.b.c"))

	l = mustLexer(t, "||")
	assert.Equal(t, []string{"a", "[b||c]", "d"}, l.Split("a||[b||c]||d"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = NewFromString("")
	assert.Error(t, err)

	_, err = NewFromString(",", WithPairSet(&types.PairSet{ID: "empty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tokens")
}

func TestWithPairSet(t *testing.T) {
	markup := &types.PairSet{
		ID:     "markup",
		Escape: `\`,
		Pairs: []types.Pair{
			{Open: "{{", Close: "}}"},
			{Open: "<", Close: ">"},
		},
	}
	l := mustLexer(t, ",", WithPairSet(markup), WithTrimSpace())

	assert.Equal(t, []string{"{{ x, y }}", "z"}, l.Split("{{ x, y }}, z"))
	assert.Equal(t, []string{"<a, b>", "c"}, l.Split("<a, b>, c"))

	// Parentheses are ordinary text for this pair set
	assert.Equal(t, []string{"(a", "b)"}, l.Split("(a, b)"))
}

func TestWithCache(t *testing.T) {
	cache := regex.NewCache()

	mustLexer(t, ",", WithCache(cache))
	assert.Equal(t, 2, cache.Len())

	mustLexer(t, ",", WithCache(cache))
	assert.Equal(t, 2, cache.Len())

	mustLexer(t, ";", WithCache(cache))
	assert.Equal(t, 3, cache.Len())
}

func TestLogger_StateChanges(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := mustLexer(t, ",", WithLogger(zap.New(core).Sugar()))

	l.Split("[a)b,c")

	entries := logs.FilterMessage("lexer state change").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "degraded", entries[0].ContextMap()["to"])

	logs.TakeAll()
	l.Split("(a,b")
	entries = logs.FilterMessage("lexer state change").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "recovering", entries[0].ContextMap()["to"])
	assert.Equal(t, "scanning", entries[1].ContextMap()["to"])

	logs.TakeAll()
	l.Split("a,b")
	assert.Equal(t, 1, logs.FilterMessage("no pair tokens in text, splitting on separator only").Len())
}

func TestConcurrentUse(t *testing.T) {
	l := mustLexer(t, ",")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, []string{"a", "(b,c)", "d"}, l.Split("a,(b,c),d"))
			}
		}()
	}
	wg.Wait()
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "keep", KeepSeparator.String())
	assert.Equal(t, "ignore", IgnoreSeparator.String())
	assert.Equal(t, "keep-back", KeepSeparatorBack.String())
	assert.Equal(t, "keep-front", KeepSeparatorFront.String())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestTokenFilter(t *testing.T) {
	f := newTokenFilter([]string{"{{", "("})
	assert.True(t, f.mayContain("a ( b"))
	assert.True(t, f.mayContain("x {{ y"))
	assert.False(t, f.mayContain("x { y"))
	assert.False(t, f.mayContain(""))

	assert.False(t, newTokenFilter(nil).mayContain("("))
}
