// Package filesystem implements the lazy enumeration of directory children
// on top of the operating system's directory reading functions.
package filesystem

import (
	"fmt"
	"os"

	"github.com/desertwitch/makethumbs/internal/schema"
)

// defaultBatchSize is the amount of directory entries read from the operating
// system per call, while the [Cursor] still hands them out one by one.
const defaultBatchSize = 64

type osProvider interface {
	Open(name string) (*os.File, error)
}

// Handler is the principal implementation for the filesystem services.
type Handler struct {
	osHandler osProvider
	batchSize int
}

// NewHandler returns a pointer to a new filesystem [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
		batchSize: defaultBatchSize,
	}
}

// Open acquires a [Cursor] over the immediate children of a directory. The
// returned [Cursor] must be released with [Cursor.Close] on all paths.
//
//nolint:ireturn
func (f *Handler) Open(path string) (schema.Cursor, error) {
	file, err := f.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-open) failed to open: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fmt.Errorf("(fs-open) failed to stat: %w", err)
	}

	if !info.IsDir() {
		file.Close()

		return nil, fmt.Errorf("(fs-open) %w: %s", ErrNotDirectory, path)
	}

	return newCursor(file, f.batchSize), nil
}
