package pathing

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHandler_Defaults tests the factory function and its limit selection.
func TestNewHandler_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PlatformMaxPath, NewHandler(0).MaxPath())
	assert.Equal(t, PlatformMaxPath, NewHandler(-1).MaxPath())
	assert.Equal(t, 64, NewHandler(64).MaxPath())
}

// TestCheckDirectory tests the directory length check, which must leave room
// for enumerating the directory's children.
func TestCheckDirectory(t *testing.T) {
	t.Parallel()

	handler := NewHandler(10)

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"Success_Short", "/abc", false},
		{"Success_AtReserve", "/abcdef", false},
		{"Fail_OverReserve", "/abcdefg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.CheckDirectory(tt.dir)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPathTooLong)
				assert.Contains(t, err.Error(), tt.dir)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestJoin tests the construction of child element paths.
func TestJoin(t *testing.T) {
	t.Parallel()

	handler := NewHandler(12)
	dir := string(filepath.Separator) + "root"

	t.Run("Success_Joined", func(t *testing.T) {
		fullPath, err := handler.Join(dir, "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "a.jpg"), fullPath)
	})

	t.Run("Success_JustUnderLimit", func(t *testing.T) {
		fullPath, err := handler.Join(dir, "abcde")
		require.NoError(t, err)
		assert.Len(t, fullPath, 11)
	})

	t.Run("Fail_AtLimit", func(t *testing.T) {
		_, err := handler.Join(dir, "abcdef")
		require.ErrorIs(t, err, ErrPathTooLong)
	})

	t.Run("Fail_EmptyName", func(t *testing.T) {
		_, err := handler.Join(dir, "")
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("Success_PlatformLimit", func(t *testing.T) {
		platform := NewHandler(0)
		_, err := platform.Join(dir, strings.Repeat("a", PlatformMaxPath))
		require.ErrorIs(t, err, ErrPathTooLong)
	})
}
