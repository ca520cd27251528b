package carve

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of them,
// so callers can branch with errors.Is.
var (
	// ErrInvalidState is returned when an edit is requested that the
	// current history does not allow. The grid is left untouched.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidGeometry is returned for non-positive grid extents and for
	// seam operations that do not fit the grid.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrEmptyImage is returned when exporting a grid without pixels.
	ErrEmptyImage = errors.New("cannot export an empty image")

	// ErrUnsupportedFormat is returned for output extensions without an encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrSnapshot is returned when an edit was applied but its snapshot
	// could not be written.
	ErrSnapshot = errors.New("edit applied, snapshot failed")
)

var (
	ErrNoHighlight   = fmt.Errorf("%w: there is no highlighted seam to delete", ErrInvalidState)
	ErrNothingToUndo = fmt.Errorf("%w: there are no edits to undo", ErrInvalidState)
	ErrUnknownOp     = fmt.Errorf("%w: unknown operation", ErrInvalidState)
	ErrLastColumn    = fmt.Errorf("%w: cannot remove the last column of the image", ErrInvalidGeometry)
	ErrSeamLength    = fmt.Errorf("%w: seam length does not match the image height", ErrInvalidGeometry)
)
