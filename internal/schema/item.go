package schema

import (
	"io"
	"time"
)

// Item is an opaque handle of a filesystem element, as required by a
// [ThumbnailService] instead of a raw path. It is acquired with a
// [PathResolver] and must always be released with [Item.Release].
type Item interface {
	Path() string
	URI() string
	Size() int64
	ModTime() time.Time
	IsRegular() bool

	// Reader returns a reader positioned at the start of the element's
	// content. It fails for non-regular elements.
	Reader() (io.Reader, error)

	Release() error
}

// PathResolver describes methods an [Item] resolving capability needs to
// have.
type PathResolver interface {
	Resolve(path string) (Item, error)
}
