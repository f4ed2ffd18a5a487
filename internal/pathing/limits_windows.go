//go:build windows

package pathing

import (
	"unicode/utf16"

	"golang.org/x/sys/windows"
)

// PlatformMaxPath is the maximum path length of the operating system.
const PlatformMaxPath = windows.MAX_PATH

// pathLength returns the length of a path in UTF-16 code units, as counted by
// the operating system.
func pathLength(path string) int {
	return len(utf16.Encode([]rune(path)))
}
