package main

import "errors"

var (
	// ErrServiceAcquisition occurs when the thumbnail cache cannot be opened.
	ErrServiceAcquisition = errors.New("thumbnail service acquisition failed")

	// ErrInvalidFilter occurs when the configured filter patterns are invalid.
	ErrInvalidFilter = errors.New("invalid filter")
)
