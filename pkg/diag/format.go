package diag

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/praetorian-inc/structsrc/pkg/source"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"golang.org/x/term"
)

// Formatter renders diagnostics for one named source.
type Formatter struct {
	Name   string
	Source *source.Source

	styles *styles
}

// styles holds the color formatters for each part of a rendered diagnostic.
type styles struct {
	location *color.Color
	message  *color.Color
	marker   *color.Color
	severity map[Severity]*color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.Bold),
		message:  color.New(color.Bold),
		marker:   color.New(color.FgHiGreen, color.Bold),
		severity: map[Severity]*color.Color{
			Error:   color.New(color.FgHiRed, color.Bold),
			Warning: color.New(color.FgHiYellow, color.Bold),
			Info:    color.New(color.FgHiBlue, color.Bold),
			Hint:    color.New(color.FgHiCyan),
		},
	}

	all := []*color.Color{s.location, s.message, s.marker}
	for _, c := range s.severity {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithColor forces colored output on or off. Default: off.
func WithColor(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.styles = newStyles(enabled)
	}
}

// WithColorAuto enables color when w is a terminal and NO_COLOR is unset.
func WithColorAuto(w io.Writer) FormatterOption {
	return func(f *Formatter) {
		f.styles = newStyles(isTerminal(w) && os.Getenv("NO_COLOR") == "")
	}
}

func isTerminal(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

// NewFormatter creates a formatter for src, reported under name.
func NewFormatter(name string, src *source.Source, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		Name:   name,
		Source: src,
		styles: newStyles(false),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders d as a "name:line:col: severity: message" header followed,
// when the start line exists, by that line and an underline of the range.
// Columns are shown 1-based.
func (f *Formatter) Format(d Diagnostic) (string, error) {
	if d.Range.Start > d.Range.End {
		return "", errors.Newf("invalid range %d-%d", d.Range.Start, d.Range.End)
	}

	loc := f.Source.RangeToLocation(d.Range)
	var b strings.Builder

	b.WriteString(f.styles.location.Sprintf("%s:%d:%d:", f.Name, loc.Start.Line, loc.Start.Column+1))
	b.WriteString(" ")
	b.WriteString(f.severityStyle(d.Severity).Sprintf("%s:", d.Severity))
	b.WriteString(" ")
	b.WriteString(f.styles.message.Sprint(d.Message))
	b.WriteString("\n")

	text, err := f.Source.LineText(loc.Start.Line)
	runes := []rune(text)
	if err != nil || loc.Start.Column < 0 || loc.Start.Column > len(runes) {
		// Extrapolated positions have no source text to show
		return b.String(), nil
	}

	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(padding(runes, loc.Start.Column))
	b.WriteString(f.styles.marker.Sprint(underline(runes, loc)))
	b.WriteString("\n")

	return b.String(), nil
}

// Write formats each diagnostic to w.
func (f *Formatter) Write(w io.Writer, diags ...Diagnostic) error {
	for _, d := range diags {
		s, err := f.Format(d)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return errors.Wrap(err, "failed to write diagnostic")
		}
	}
	return nil
}

func (f *Formatter) severityStyle(s Severity) *color.Color {
	if c, ok := f.styles.severity[s]; ok {
		return c
	}
	return f.styles.message
}

// padding reproduces tabs so the marker lines up under the text.
func padding(line []rune, column int) string {
	var b strings.Builder
	for i := 0; i < column; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// underline is a caret under the first rune and tildes under the rest of the
// range on the start line. Ranges past the end of the line stop there.
func underline(line []rune, loc types.Location) string {
	end := len(line)
	if loc.End.Line == loc.Start.Line && loc.End.Column < end {
		end = loc.End.Column
	}
	n := end - loc.Start.Column
	if n < 1 {
		n = 1
	}
	return "^" + strings.Repeat("~", n-1)
}
