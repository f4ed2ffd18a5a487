package pathing

import "errors"

var (
	// ErrPathTooLong occurs when a path (or a path constructed from a
	// directory and one of its children) would exceed the path length limit.
	ErrPathTooLong = errors.New("path is too long")

	// ErrEmptyName occurs when a child name to be joined onto a directory is
	// empty.
	ErrEmptyName = errors.New("empty element name")
)
