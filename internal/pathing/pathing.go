// Package pathing implements the construction of element paths within the
// limits of the operating system's maximum path length.
package pathing

import (
	"fmt"
	"path/filepath"
)

// dirPatternReserve is the room a directory path needs to leave for a
// separator, an enumeration wildcard and the terminator.
const dirPatternReserve = 3

// Handler is the principal implementation for the pathing services.
type Handler struct {
	maxPath int
}

// NewHandler returns a pointer to a new pathing [Handler]. A maxPath of zero
// or less selects the limit of the operating system ([PlatformMaxPath]).
func NewHandler(maxPath int) *Handler {
	if maxPath <= 0 {
		maxPath = PlatformMaxPath
	}

	return &Handler{
		maxPath: maxPath,
	}
}

// MaxPath returns the path length limit the [Handler] enforces.
func (p *Handler) MaxPath() int {
	return p.maxPath
}

// CheckDirectory verifies that a directory path leaves enough room for its
// children to be enumerated.
func (p *Handler) CheckDirectory(dir string) error {
	if pathLength(dir) > p.maxPath-dirPatternReserve {
		return fmt.Errorf("(pathing-checkdir) %w: %s", ErrPathTooLong, dir)
	}

	return nil
}

// Join returns the full path of a directory's child element. The length of
// the full path, including its terminator, must fit into the limit.
func (p *Handler) Join(dir string, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("(pathing-join) %w: %s", ErrEmptyName, dir)
	}

	fullPath := filepath.Join(dir, name)

	if pathLength(fullPath) >= p.maxPath {
		return "", fmt.Errorf("(pathing-join) %w: %s", ErrPathTooLong, fullPath)
	}

	return fullPath, nil
}
