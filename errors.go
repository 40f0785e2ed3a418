package borepix

import (
	"errors"
	"fmt"
)

// ErrConfig indicates an invalid color-stop table or width parameter.
// It surfaces at pipeline construction, before any row is processed, and is
// fatal to startup.
var ErrConfig = errors.New("borepix: invalid configuration")

// ErrEncode indicates an RGB buffer whose size disagrees with the declared
// width at the encoder boundary. This is a pipeline bug (buffer/width
// desynchronization), not bad input.
var ErrEncode = errors.New("borepix: encoding contract violation")

// ErrRowLength is the sentinel matched by RowLengthError via errors.Is.
var ErrRowLength = errors.New("borepix: row length mismatch")

// RowLengthError reports an input row whose sample count disagrees with the
// configured source width. It is per-row and recoverable: a batch caller may
// skip the offending row and continue with its siblings.
type RowLengthError struct {
	Expected int
	Actual   int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("borepix: row length mismatch: expected %d samples, got %d", e.Expected, e.Actual)
}

// Unwrap lets errors.Is(err, ErrRowLength) match without unpacking the
// struct.
func (e *RowLengthError) Unwrap() error { return ErrRowLength }
