package schema

import "errors"

var (
	// ErrItemIsDirectory occurs when a path that was enumerated as a
	// non-directory resolves to a directory (e.g. through a symbolic link).
	ErrItemIsDirectory = errors.New("item is a directory")

	// ErrItemNotRegular occurs when the content of an [Item] is requested, but
	// the [Item] is not a regular file.
	ErrItemNotRegular = errors.New("item is not a regular file")

	// ErrItemReleased occurs when an [Item] is used after it was released.
	ErrItemReleased = errors.New("item was released")
)
