// Package filter implements the selection of files by doublestar glob
// patterns, relative to the root of a traversal.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a set of positive and negative (prefixed with "!") patterns. A
// path is selected if it matches any positive pattern (or none are given) and
// no negative pattern.
type Filter struct {
	positivePatterns []string
	negativePatterns []string
}

// Parse returns a pointer to a new [Filter] from a comma separated list of
// patterns. An empty list selects every path.
func Parse(patterns string) (*Filter, error) {
	f := &Filter{}

	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		negative := strings.HasPrefix(pattern, "!")
		pattern = strings.TrimPrefix(pattern, "!")

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("(filter-parse) %w: %q", ErrInvalidPattern, pattern)
		}

		if negative {
			f.negativePatterns = append(f.negativePatterns, pattern)
		} else {
			f.positivePatterns = append(f.positivePatterns, pattern)
		}
	}

	return f, nil
}

// IsEmpty reports whether the [Filter] selects every path.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.positivePatterns) == 0 && len(f.negativePatterns) == 0)
}

// Match reports whether a path, relative to the traversal root, is selected.
func (f *Filter) Match(relPath string) bool {
	if f.IsEmpty() {
		return true
	}

	relPath = filepath.ToSlash(relPath)

	matchesPositive := len(f.positivePatterns) == 0
	for _, pattern := range f.positivePatterns {
		if doublestar.MatchUnvalidated(pattern, relPath) {
			matchesPositive = true

			break
		}
	}

	if !matchesPositive {
		return false
	}

	for _, pattern := range f.negativePatterns {
		if doublestar.MatchUnvalidated(pattern, relPath) {
			return false
		}
	}

	return true
}
