package archive

import (
	"errors"
	"fmt"
)

// Sentinel errors for package archive.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Format errors
	ErrUnsupportedFormat = errors.New("unsupported container format")

	// Writer state errors
	ErrWriterClosed = errors.New("archive writer already closed")

	// Compression configuration errors
	ErrInvalidLevel = errors.New("compression level must be between 0 and 9")
)

// ReadError reports a failure opening, enumerating, or extracting a source
// container. Path names the container, not the entry inside it.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read container %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failure building or committing the normalized output
// container at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write container %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
