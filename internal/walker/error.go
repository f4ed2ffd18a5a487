package walker

import "errors"

var (
	// ErrPathTooLong occurs when a directory or element path exceeds the path
	// length limit. It aborts the whole traversal.
	ErrPathTooLong = errors.New("path is too long")

	// ErrEnumeration occurs when the children of a directory cannot be
	// listed, for any other reason than that all were listed. It aborts the
	// whole traversal.
	ErrEnumeration = errors.New("enumerating files in directory failed")

	// ErrResolution occurs when an element path cannot be resolved to an item
	// for the thumbnail service. It aborts the whole traversal.
	ErrResolution = errors.New("path could not be resolved")
)
