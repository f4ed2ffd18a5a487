package filesystem

import "errors"

var (
	// ErrNotDirectory occurs when a path that is to be enumerated does not
	// reference a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrCursorClosed occurs when a [Cursor] is used after it was released.
	ErrCursorClosed = errors.New("cursor is closed")
)
