package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned by Chunk for a non-positive size.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// FormatError reports a remnant token that could not be normalized.
type FormatError struct {
	Kind string // "quantity" or "price"
	Raw  string
	err  error
}

func (e *FormatError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("malformed %s token %q: %v", e.Kind, e.Raw, e.err)
	}
	return fmt.Sprintf("malformed %s token %q", e.Kind, e.Raw)
}

func (e *FormatError) Unwrap() error {
	return e.err
}
