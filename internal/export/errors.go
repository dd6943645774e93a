package export

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding = errors.New("export: encoding failed")
	ErrCanceled = errors.New("export: canceled")
)

// EncodingError reports a failure writing one output format. Frame is -1
// when the failure is not tied to a single frame.
type EncodingError struct {
	Format string
	Frame  int
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("export: %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("export: %s frame %d: %v", e.Format, e.Frame, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }
