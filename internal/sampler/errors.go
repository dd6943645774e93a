package sampler

import (
	"errors"
	"fmt"
)

// ErrLoad marks any failure to parse or render a source.
var ErrLoad = errors.New("sampler: source could not be loaded")

// LoadError wraps a parse or render failure with the source name.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("sampler: load failed: %v", e.Err)
	}
	return fmt.Sprintf("sampler: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
