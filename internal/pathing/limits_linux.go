//go:build linux

package pathing

import "golang.org/x/sys/unix"

// PlatformMaxPath is the maximum path length of the operating system.
const PlatformMaxPath = unix.PathMax

// pathLength returns the length of a path as counted by the operating system.
func pathLength(path string) int {
	return len(path)
}
