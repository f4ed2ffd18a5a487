package thumbcache

import "errors"

var (
	// ErrInvalidSize occurs when a thumbnail is requested at a size outside
	// of the supported range.
	ErrInvalidSize = errors.New("thumbnail size out of range")

	// ErrUnsupportedFormat occurs when the content of an item is not in any
	// of the supported image formats.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge occurs when an image has more pixels than the cache
	// is configured to decode.
	ErrImageTooLarge = errors.New("image too large")

	// ErrEmptyImage occurs when a decoded image has no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrPreviouslyFailed occurs when an earlier extraction for the unchanged
	// item has failed and was recorded as such.
	ErrPreviouslyFailed = errors.New("thumbnail extraction failed previously")

	// ErrHashMismatch occurs when a written thumbnail does not read back as
	// what was written.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrClosed occurs when the cache is used after it was released.
	ErrClosed = errors.New("thumbnail cache is closed")

	// ErrInvalidPNG occurs when a cached thumbnail is not a readable PNG.
	ErrInvalidPNG = errors.New("invalid png data")
)
