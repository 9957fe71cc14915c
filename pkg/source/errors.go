package source

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrOutOfRange is matched by every OutOfRangeError via errors.Is.
var ErrOutOfRange = errors.New("position out of range")

// OutOfRangeError reports a line number with no entry in the line-start table.
// Column overflow is never reported; it is extrapolated instead.
type OutOfRangeError struct {
	Line  int // requested 1-based line
	Lines int // number of lines in the source
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("line %d out of range [1, %d]", e.Line, e.Lines)
}

// Is lets errors.Is(err, ErrOutOfRange) succeed for any OutOfRangeError.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
