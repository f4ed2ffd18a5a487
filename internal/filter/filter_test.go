package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse tests the parsing of pattern lists.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("Success_Empty", func(t *testing.T) {
		f, err := Parse("")
		require.NoError(t, err)
		assert.True(t, f.IsEmpty())
	})

	t.Run("Success_OnlySeparators", func(t *testing.T) {
		f, err := Parse(" , ,")
		require.NoError(t, err)
		assert.True(t, f.IsEmpty())
	})

	t.Run("Success_Mixed", func(t *testing.T) {
		f, err := Parse("**/*.jpg, **/*.png ,!**/.cache/**")
		require.NoError(t, err)
		assert.Equal(t, []string{"**/*.jpg", "**/*.png"}, f.positivePatterns)
		assert.Equal(t, []string{"**/.cache/**"}, f.negativePatterns)
	})

	t.Run("Fail_Invalid", func(t *testing.T) {
		_, err := Parse("**/[.jpg")
		require.ErrorIs(t, err, ErrInvalidPattern)
	})
}

// TestMatch tests the selection of relative paths.
func TestMatch(t *testing.T) {
	t.Parallel()

	f, err := Parse("**/*.jpg,**/*.png,!raw/**")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"Success_TopLevel", "a.jpg", true},
		{"Success_Nested", "sub/deeper/b.png", true},
		{"Fail_OtherExtension", "notes.txt", false},
		{"Fail_Negated", "raw/c.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Match(tt.path))
		})
	}
}

// TestMatch_OnlyNegative tests that negative patterns alone select every
// other path.
func TestMatch_OnlyNegative(t *testing.T) {
	t.Parallel()

	f, err := Parse("!**/*.txt")
	require.NoError(t, err)

	assert.True(t, f.Match("a.jpg"))
	assert.False(t, f.Match("sub/notes.txt"))
}

// TestMatch_Nil tests that a nil [Filter] selects every path.
func TestMatch_Nil(t *testing.T) {
	t.Parallel()

	var f *Filter
	assert.True(t, f.Match("anything"))
}
