// Package shellitem implements the resolution of filesystem paths into
// [schema.Item] handles, as consumed by a thumbnail service.
package shellitem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertwitch/makethumbs/internal/schema"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

// Resolver is the principal implementation of a [schema.PathResolver].
type Resolver struct {
	osHandler osProvider
}

// NewResolver returns a pointer to a new [Resolver].
func NewResolver(osHandler osProvider) *Resolver {
	return &Resolver{
		osHandler: osHandler,
	}
}

// Resolve acquires an [Item] for a path. Symbolic links are followed. Regular
// files are opened for reading as part of the resolution, so the returned
// [Item] must be released with [Item.Release] on all paths.
//
//nolint:ireturn
func (r *Resolver) Resolve(path string) (schema.Item, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("(shellitem-resolve) failed to abs: %w", err)
	}

	info, err := r.osHandler.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("(shellitem-resolve) failed to stat: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("(shellitem-resolve) %w: %s", schema.ErrItemIsDirectory, absPath)
	}

	item := &Item{
		path: absPath,
		uri:  fileURI(absPath),
		info: info,
	}

	if info.Mode().IsRegular() {
		file, err := r.osHandler.Open(absPath)
		if err != nil {
			return nil, fmt.Errorf("(shellitem-resolve) failed to open: %w", err)
		}
		item.file = file
	}

	return item, nil
}
