package schema

import (
	"os"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Open wraps around [os.Open].
func (*OS) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// Stat wraps around [os.Stat].
func (*OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// UserCacheDir wraps around [os.UserCacheDir].
func (*OS) UserCacheDir() (string, error) {
	return os.UserCacheDir()
}
