// Package validation implements the validation of a traversal request from
// its positional command-line arguments. A request that fails validation
// must be rejected before any directory access is attempted.
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinSize is the smallest supported thumbnail size.
	MinSize = 1

	// MaxSize is the largest supported thumbnail size.
	MaxSize = 1024

	requestArgs = 2
)

// Request is a validated traversal request.
type Request struct {
	Directory string
	Size      int
}

// ValidateRequest validates the positional arguments (directory and size)
// into a [Request].
func ValidateRequest(args []string) (*Request, error) {
	if len(args) != requestArgs {
		return nil, fmt.Errorf("(validation) %w: expected %d, got %d", ErrUsage, requestArgs, len(args))
	}

	size, err := ValidateSize(args[1])
	if err != nil {
		return nil, err
	}

	if args[0] == "" {
		return nil, fmt.Errorf("(validation) %w", ErrEmptyDirectory)
	}

	return &Request{
		Directory: args[0],
		Size:      size,
	}, nil
}

// ValidateSize parses a base-10 thumbnail size and checks that it is within
// [MinSize] and [MaxSize].
func ValidateSize(value string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("(validation) %w: %q", ErrInvalidSize, value)
	}

	if size < MinSize || size > MaxSize {
		return 0, fmt.Errorf("(validation) %w: %d", ErrInvalidSize, size)
	}

	return size, nil
}
