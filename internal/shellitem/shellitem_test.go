package shellitem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/desertwitch/makethumbs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve_RegularFile tests the resolution of a regular file and the
// release of its handle.
func TestResolve_RegularFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "a b.jpg")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	resolver := NewResolver(&schema.OS{})

	item, err := resolver.Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, path, item.Path())
	assert.True(t, item.IsRegular())
	assert.EqualValues(t, 7, item.Size())
	assert.Contains(t, item.URI(), "file:///")
	assert.Contains(t, item.URI(), "a%20b.jpg")

	for range 2 {
		r, err := item.Reader()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data), "reader should always be rewound")
	}

	require.NoError(t, item.Release())
	require.NoError(t, item.Release())

	_, err = item.Reader()
	require.ErrorIs(t, err, schema.ErrItemReleased)
}

// TestResolve_Failures tests the resolution failures.
func TestResolve_Failures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(&schema.OS{})

	t.Run("Fail_NotExists", func(t *testing.T) {
		_, err := resolver.Resolve(filepath.Join(root, "missing.jpg"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Fail_Directory", func(t *testing.T) {
		_, err := resolver.Resolve(root)
		require.ErrorIs(t, err, schema.ErrItemIsDirectory)
	})
}

// TestResolve_Symlinks tests that symbolic links are followed.
func TestResolve_Symlinks(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symbolic links need elevated privileges")
	}

	root := t.TempDir()
	target := filepath.Join(root, "target.jpg")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.jpg")))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	resolver := NewResolver(&schema.OS{})

	item, err := resolver.Resolve(filepath.Join(root, "link.jpg"))
	require.NoError(t, err)
	defer item.Release()
	assert.True(t, item.IsRegular())

	_, err = resolver.Resolve(filepath.Join(root, "loop"))
	require.ErrorIs(t, err, schema.ErrItemIsDirectory)
}

// TestFileURI tests the construction of escaped file URIs.
func TestFileURI(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		assert.Equal(t, "file:///C:/photos/a.jpg", fileURI(`C:\photos\a.jpg`))

		return
	}

	tests := []struct {
		path     string
		expected string
	}{
		{"/photos/a.jpg", "file:///photos/a.jpg"},
		{"/photos/with space.jpg", "file:///photos/with%20space.jpg"},
		{"/photos/100%.jpg", "file:///photos/100%25.jpg"},
		{"/photos/ümlaut.jpg", "file:///photos/%C3%BCmlaut.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, fileURI(tt.path))
	}
}
