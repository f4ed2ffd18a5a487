package shellitem

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertwitch/makethumbs/internal/schema"
)

// Item is a resolved filesystem element. It implements [schema.Item].
type Item struct {
	path     string
	uri      string
	info     os.FileInfo
	file     *os.File
	released bool
}

// Path returns the absolute path of the element.
func (i *Item) Path() string {
	return i.path
}

// URI returns the escaped file URI of the element.
func (i *Item) URI() string {
	return i.uri
}

// Size returns the size of the element in bytes.
func (i *Item) Size() int64 {
	return i.info.Size()
}

// ModTime returns the modification time of the element.
func (i *Item) ModTime() time.Time {
	return i.info.ModTime()
}

// IsRegular reports whether the element is a regular file.
func (i *Item) IsRegular() bool {
	return i.info.Mode().IsRegular()
}

// Reader returns the element's content, rewound to its start.
//
//nolint:ireturn
func (i *Item) Reader() (io.Reader, error) {
	if i.released {
		return nil, schema.ErrItemReleased
	}

	if i.file == nil {
		return nil, fmt.Errorf("(shellitem-reader) %w: %s", schema.ErrItemNotRegular, i.path)
	}

	if _, err := i.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("(shellitem-reader) failed to seek: %w", err)
	}

	return i.file, nil
}

// Release closes any handle held for the element. It is safe to call more
// than once.
func (i *Item) Release() error {
	if i.released {
		return nil
	}
	i.released = true

	if i.file != nil {
		if err := i.file.Close(); err != nil {
			return fmt.Errorf("(shellitem-release) %w", err)
		}
	}

	return nil
}

// fileURI returns the escaped "file://" URI for an absolute path.
func fileURI(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	u := url.URL{Scheme: "file", Path: p}

	return u.String()
}
