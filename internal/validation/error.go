package validation

import "errors"

var (
	// ErrUsage occurs when the wrong amount of positional arguments is given.
	ErrUsage = errors.New("wrong number of arguments")

	// ErrInvalidSize occurs when the thumbnail size is not an integer within
	// the supported range.
	ErrInvalidSize = errors.New("invalid thumbnail size")

	// ErrEmptyDirectory occurs when the directory argument is empty.
	ErrEmptyDirectory = errors.New("empty directory path")
)
