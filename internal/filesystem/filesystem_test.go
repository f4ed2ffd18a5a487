package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/makethumbs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirEntry struct {
	name  string
	isDir bool
}

func (e fakeDirEntry) Name() string               { return e.name }
func (e fakeDirEntry) IsDir() bool                { return e.isDir }
func (e fakeDirEntry) Type() fs.FileMode          { return 0 }
func (e fakeDirEntry) Info() (fs.FileInfo, error) { return nil, errors.New("no info") }

// fakeDir is a [dirReader] handing out a fixed set of entries, followed by a
// configurable final error.
type fakeDir struct {
	entries  []os.DirEntry
	finalErr error
	closed   int
}

func (d *fakeDir) ReadDir(n int) ([]os.DirEntry, error) {
	if len(d.entries) == 0 {
		return nil, d.finalErr
	}
	if n > len(d.entries) {
		n = len(d.entries)
	}
	batch := d.entries[:n]
	d.entries = d.entries[n:]

	return batch, nil
}

func (d *fakeDir) Close() error {
	d.closed++

	return nil
}

func collect(t *testing.T, c schema.Cursor) ([]schema.Entry, error) {
	t.Helper()

	var entries []schema.Entry
	for {
		entry, err := c.Next()
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// TestCursor_Next tests the lazy enumeration across multiple batches.
func TestCursor_Next(t *testing.T) {
	t.Parallel()

	dir := &fakeDir{
		entries: []os.DirEntry{
			fakeDirEntry{name: "."},
			fakeDirEntry{name: ".."},
			fakeDirEntry{name: "a.jpg"},
			fakeDirEntry{name: "sub", isDir: true},
			fakeDirEntry{name: "b.png"},
		},
		finalErr: io.EOF,
	}

	cursor := newCursor(dir, 2)

	entries, err := collect(t, cursor)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []schema.Entry{
		{Name: "a.jpg"},
		{Name: "sub", IsDir: true},
		{Name: "b.png"},
	}, entries)

	_, err = cursor.Next()
	require.ErrorIs(t, err, io.EOF, "end marker should be sticky")

	require.NoError(t, cursor.Close())
	assert.Equal(t, 1, dir.closed)
}

// TestCursor_ReadError tests that a failure other than exhaustion is reported
// as such and not as the end marker.
func TestCursor_ReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("device gone")
	dir := &fakeDir{
		entries:  []os.DirEntry{fakeDirEntry{name: "a.jpg"}},
		finalErr: readErr,
	}

	cursor := newCursor(dir, 10)
	defer cursor.Close()

	entries, err := collect(t, cursor)
	require.ErrorIs(t, err, readErr)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Len(t, entries, 1)
}

// TestCursor_Close tests the release semantics of a [Cursor].
func TestCursor_Close(t *testing.T) {
	t.Parallel()

	dir := &fakeDir{finalErr: io.EOF}
	cursor := newCursor(dir, 10)

	require.NoError(t, cursor.Close())
	require.NoError(t, cursor.Close())
	assert.Equal(t, 1, dir.closed, "directory should be released exactly once")

	_, err := cursor.Next()
	require.ErrorIs(t, err, ErrCursorClosed)
}

// TestHandler_Open tests acquiring cursors for real directories.
func TestHandler_Open(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.png"), []byte("b"), 0o644))

	handler := NewHandler(&schema.OS{})

	t.Run("Success_Directory", func(t *testing.T) {
		cursor, err := handler.Open(root)
		require.NoError(t, err)
		defer cursor.Close()

		entries, err := collect(t, cursor)
		require.ErrorIs(t, err, io.EOF)
		assert.ElementsMatch(t, []schema.Entry{
			{Name: "sub", IsDir: true},
			{Name: "a.jpg"},
			{Name: "b.png"},
		}, entries)
	})

	t.Run("Success_EmptyDirectory", func(t *testing.T) {
		cursor, err := handler.Open(filepath.Join(root, "sub"))
		require.NoError(t, err)
		defer cursor.Close()

		entries, err := collect(t, cursor)
		require.ErrorIs(t, err, io.EOF)
		assert.Empty(t, entries)
	})

	t.Run("Fail_NotDirectory", func(t *testing.T) {
		_, err := handler.Open(filepath.Join(root, "a.jpg"))
		require.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("Fail_NotExists", func(t *testing.T) {
		_, err := handler.Open(filepath.Join(root, "missing"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}
