package configuration

import "errors"

// ErrInvalidValue occurs when a configuration key holds a malformed value.
var ErrInvalidValue = errors.New("invalid configuration value")
