//go:build !linux && !windows

package pathing

// PlatformMaxPath is the maximum path length of the BSD-derived systems,
// assumed where no other limit is known.
const PlatformMaxPath = 1024

// pathLength returns the length of a path as counted by the operating system.
func pathLength(path string) int {
	return len(path)
}
