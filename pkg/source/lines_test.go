package source

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(src *Source) []Line {
	var lines []Line
	for l := range src.Lines() {
		lines = append(lines, l)
	}
	return lines
}

func TestLines(t *testing.T) {
	src := New("one\r\ntwo\nthree\u2028four")

	lines := collect(src)
	require.Len(t, lines, src.Line())

	assert.Equal(t, Line{Number: 1, Text: "one", Range: types.Range{Start: 0, End: 3}, Terminator: "\r\n"}, lines[0])
	assert.Equal(t, Line{Number: 2, Text: "two", Range: types.Range{Start: 5, End: 8}, Terminator: "\n"}, lines[1])
	assert.Equal(t, Line{Number: 3, Text: "three", Range: types.Range{Start: 9, End: 14}, Terminator: "\u2028"}, lines[2])
	assert.Equal(t, Line{Number: 4, Text: "four", Range: types.Range{Start: 15, End: 19}}, lines[3])
}

func TestLines_TrailingTerminator(t *testing.T) {
	src := New("a\n")

	lines := collect(src)
	require.Len(t, lines, 2)
	assert.Equal(t, "\n", lines[0].Terminator)
	assert.Equal(t, Line{Number: 2, Text: "", Range: types.Range{Start: 2, End: 2}}, lines[1])
}

func TestLines_CarriageReturnBeforeCRLF(t *testing.T) {
	src := New("\r\r\n")

	lines := collect(src)
	require.Len(t, lines, 3)
	assert.Equal(t, "\r", lines[0].Terminator)
	assert.Equal(t, "\r\n", lines[1].Terminator)
	assert.Equal(t, "", lines[1].Text)
}

func TestLines_Restartable(t *testing.T) {
	src := New("a\nb\nc")
	assert.Equal(t, collect(src), collect(src))
}

func TestLines_EarlyBreak(t *testing.T) {
	src := New("a\nb\nc")

	var seen []int
	for l := range src.Lines() {
		seen = append(seen, l.Number)
		if l.Number == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestLines_ReconstructText(t *testing.T) {
	text := "x\ry\r\nz\u2029\n"
	src := New(text)

	var rebuilt string
	for l := range src.Lines() {
		rebuilt += l.Text + l.Terminator
	}
	assert.Equal(t, text, rebuilt)
}

func TestLineText(t *testing.T) {
	src := New("alpha\nbeta")

	text, err := src.LineText(2)
	require.NoError(t, err)
	assert.Equal(t, "beta", text)

	_, err = src.LineText(3)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
