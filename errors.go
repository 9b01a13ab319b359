package svgmesh

import (
	"errors"
	"fmt"
)

// Errors recorded for malformed source data. They are wrapped with context
// and collected in Result.Errors; the import continues with the next shape.
var (
	// ErrMalformedLength is returned when length text cannot be parsed.
	ErrMalformedLength = errors.New("svgmesh: malformed length")

	// ErrMalformedTransform is returned for transform entries that cannot be parsed.
	ErrMalformedTransform = errors.New("svgmesh: malformed transform")

	// ErrMalformedPath is returned for path data that cannot be parsed.
	ErrMalformedPath = errors.New("svgmesh: malformed path data")

	// ErrMalformedColor is returned for colour text that cannot be parsed.
	ErrMalformedColor = errors.New("svgmesh: malformed color")
)

// Session errors.
var (
	// ErrCorruptedFile is recorded when rendering the document panicked. The
	// partial mesh is discarded.
	ErrCorruptedFile = errors.New("svgmesh: corrupted file")

	// ErrImportInProgress is returned when a session is asked to import while
	// another import is running.
	ErrImportInProgress = errors.New("svgmesh: import already in progress")

	// ErrSessionClosed is returned when importing with a closed session.
	ErrSessionClosed = errors.New("svgmesh: session is closed")
)

// ImportError ties an error to the shape that produced it.
type ImportError struct {
	Shape string
	Err   error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Shape == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("shape %q: %v", e.Shape, e.Err)
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}
