package thumbcache

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

const (
	dirPerms  = 0o700
	filePerms = 0o600
)

// store writes data to a file below the cache root. The data is written to
// a uniquely named temporary file first, optionally verified by reading it
// back, and then renamed into place.
func (c *Handler) store(name string, data []byte) error {
	var stored bool

	tmpName := name + "." + uuid.NewString() + ".tmp"
	defer func() {
		if !stored {
			c.root.Remove(tmpName) //nolint:errcheck
		}
	}()

	dstFile, err := c.root.OpenFile(tmpName, os.O_CREATE|os.O_WRONLY|os.O_EXCL, filePerms)
	if err != nil {
		return fmt.Errorf("(thumbcache-store) failed to open tmp: %w", err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()

	if _, err := io.Copy(io.MultiWriter(dstFile, srcHasher), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("(thumbcache-store) failed to write: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("(thumbcache-store) failed to sync: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("(thumbcache-store) failed to close: %w", err)
	}

	if c.options.VerifyWrites {
		if err := c.verify(tmpName, hex.EncodeToString(srcHasher.Sum(nil))); err != nil {
			return err
		}
	}

	if err := c.root.Rename(tmpName, name); err != nil {
		return fmt.Errorf("(thumbcache-store) failed to rename tmp file: %w", err)
	}

	stored = true

	return nil
}

// verify compares the blake3 checksum of a stored file against the expected
// checksum of the data that was written.
func (c *Handler) verify(name string, expected string) error {
	file, err := c.root.Open(name)
	if err != nil {
		return fmt.Errorf("(thumbcache-verify) failed to open: %w", err)
	}
	defer file.Close()

	dstHasher := blake3.New()
	if _, err := io.Copy(dstHasher, file); err != nil {
		return fmt.Errorf("(thumbcache-verify) failed to read: %w", err)
	}

	actual := hex.EncodeToString(dstHasher.Sum(nil))
	if actual != expected {
		return fmt.Errorf("(thumbcache-verify) %w: %s (written) != %s (stored)", ErrHashMismatch, expected, actual)
	}

	return nil
}

// readMetadata returns the dimensions and text entries of a stored
// thumbnail. A missing thumbnail is reported as [fs.ErrNotExist].
func (c *Handler) readMetadata(name string) (*pngInfo, error) {
	file, err := c.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}

		return nil, fmt.Errorf("(thumbcache-meta) failed to open: %w", err)
	}
	defer file.Close()

	info, err := readPNGInfo(file)
	if err != nil {
		return nil, fmt.Errorf("(thumbcache-meta) %w", err)
	}

	return info, nil
}
