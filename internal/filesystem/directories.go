package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertwitch/makethumbs/internal/schema"
)

type dirReader interface {
	ReadDir(n int) ([]os.DirEntry, error)
	Close() error
}

// Cursor is a lazy enumeration over the children of an open directory. It
// implements [schema.Cursor].
type Cursor struct {
	dir       dirReader
	batchSize int
	pending   []os.DirEntry
	exhausted bool
	closed    bool
}

func newCursor(dir dirReader, batchSize int) *Cursor {
	return &Cursor{
		dir:       dir,
		batchSize: batchSize,
	}
}

// Next returns the next child of the directory. Once all children were
// returned, it returns [io.EOF]. The self and parent pseudo-entries are never
// returned.
func (c *Cursor) Next() (schema.Entry, error) {
	if c.closed {
		return schema.Entry{}, ErrCursorClosed
	}

	for {
		if len(c.pending) > 0 {
			entry := c.pending[0]
			c.pending = c.pending[1:]

			if entry.Name() == "." || entry.Name() == ".." {
				continue
			}

			return schema.Entry{
				Name:  entry.Name(),
				IsDir: entry.IsDir(),
			}, nil
		}

		if c.exhausted {
			return schema.Entry{}, io.EOF
		}

		entries, err := c.dir.ReadDir(c.batchSize)
		c.pending = entries

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return schema.Entry{}, fmt.Errorf("(fs-next) failed to readdir: %w", err)
			}
			c.exhausted = true
		}
	}
}

// Close releases the underlying directory handle. It is safe to call more
// than once.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pending = nil

	if err := c.dir.Close(); err != nil {
		return fmt.Errorf("(fs-close) %w", err)
	}

	return nil
}
