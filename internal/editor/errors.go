package editor

import "errors"

var (
	// ErrEmptyUndoStack is returned by Undo when nothing has been deleted.
	ErrEmptyUndoStack = errors.New("nothing to undo")
	// ErrEmptyLandmarkSet is returned when removing from an empty landmark list.
	ErrEmptyLandmarkSet = errors.New("no landmarks to remove")
	// ErrInvalidMode is returned for an operation the current mode does not allow.
	ErrInvalidMode = errors.New("operation not allowed in current mode")
	// ErrMaskLength is returned when a mask does not match the vertex count.
	ErrMaskLength = errors.New("mask length does not match vertex count")
)

// recoverable reports whether err is a user-triggered no-op that should be
// logged and otherwise ignored.
func recoverable(err error) bool {
	return errors.Is(err, ErrEmptyUndoStack) ||
		errors.Is(err, ErrEmptyLandmarkSet) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrNoDestination)
}

// ErrNoDestination is returned by Save when the session has no saver.
var ErrNoDestination = errors.New("no save destination configured")
