package filter

import "errors"

// ErrInvalidPattern occurs when a glob pattern cannot be parsed.
var ErrInvalidPattern = errors.New("invalid glob pattern")
