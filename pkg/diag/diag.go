// Package diag renders diagnostics against a source text.
package diag

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/types"
)

// Severity orders diagnostics from most to least serious.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Level returns the SARIF result level for s.
func (s Severity) Level() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info, Hint:
		return "note"
	default:
		return "none"
	}
}

// ParseSeverity parses the output of Severity.String.
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range []Severity{Error, Warning, Info, Hint} {
		if sev.String() == s {
			return sev, nil
		}
	}
	return 0, errors.Newf("unknown severity %q", s)
}

// Diagnostic is a message attached to a range of rune offsets.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    types.Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%d, %d): %s", d.Severity, d.Range.Start, d.Range.End, d.Message)
}
