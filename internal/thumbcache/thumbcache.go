// Package thumbcache implements a thumbnail cache in the layout of the
// freedesktop.org thumbnail managing standard. Thumbnails are stored as PNG
// files named after the MD5 sum of the item's URI, in directories for each
// size class, and carry the item's URI and modification time for validation.
package thumbcache

import (
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertwitch/makethumbs/internal/schema"
)

const (
	// DefaultDirName is the name of the cache directory inside of the user's
	// cache directory.
	DefaultDirName = "thumbnails"

	// AppName is the name recorded in the thumbnails and used for the failure
	// records.
	AppName = "makethumbs"

	failDirName = "fail"

	// DefaultMaxPixels is the default limit of [Options.MaxPixels].
	DefaultMaxPixels = 100_000_000
)

type osProvider interface {
	UserCacheDir() (string, error)
}

// Options are the settings of a [Handler].
type Options struct {
	// CacheDir is the base directory of the cache. If empty, the
	// [DefaultDirName] inside the user's cache directory is used.
	CacheDir string

	// ForceExtract regenerates thumbnails even when an up-to-date one (or a
	// failure record) exists.
	ForceExtract bool

	// VerifyWrites reads back and compares any written thumbnails before
	// they are moved into place.
	VerifyWrites bool

	// MaxPixels is the largest image (width times height) that is decoded.
	// Zero or less selects [DefaultMaxPixels].
	MaxPixels int64
}

// Handler is the principal implementation of the thumbnail cache. It
// implements [schema.ThumbnailService] and must be released with
// [Handler.Close].
type Handler struct {
	root    *os.Root
	baseDir string
	options Options
}

// NewHandler acquires the thumbnail cache, creating its directory structure
// where needed, and returns a pointer to a new [Handler].
func NewHandler(osHandler osProvider, options Options) (*Handler, error) {
	baseDir := options.CacheDir

	if baseDir == "" {
		userCacheDir, err := osHandler.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("(thumbcache) failed to get user cache dir: %w", err)
		}
		baseDir = filepath.Join(userCacheDir, DefaultDirName)
	}

	if err := os.MkdirAll(baseDir, dirPerms); err != nil {
		return nil, fmt.Errorf("(thumbcache) failed to create base dir: %w", err)
	}

	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return nil, fmt.Errorf("(thumbcache) failed to open base dir: %w", err)
	}

	dirs := []string{filepath.Join(failDirName, AppName)}
	for _, b := range buckets {
		dirs = append(dirs, b.dir)
	}

	for _, dir := range dirs {
		if err := root.MkdirAll(dir, dirPerms); err != nil {
			root.Close()

			return nil, fmt.Errorf("(thumbcache) failed to create %s: %w", dir, err)
		}
	}

	if options.MaxPixels <= 0 {
		options.MaxPixels = DefaultMaxPixels
	}

	return &Handler{
		root:    root,
		baseDir: baseDir,
		options: options,
	}, nil
}

// BaseDir returns the base directory of the cache.
func (c *Handler) BaseDir() string {
	return c.baseDir
}

// ThumbnailPath returns where the thumbnail of an URI for a given size is
// (or would be) stored.
func (c *Handler) ThumbnailPath(uri string, size int) string {
	return filepath.Join(c.baseDir, thumbnailName(uri, size))
}

// Close releases the cache. It is safe to call more than once.
func (c *Handler) Close() error {
	if c.root == nil {
		return nil
	}

	root := c.root
	c.root = nil

	if err := root.Close(); err != nil {
		return fmt.Errorf("(thumbcache) failed to close: %w", err)
	}

	return nil
}

// GenerateThumbnail extracts a thumbnail of an [schema.Item] into the cache,
// unless an up-to-date one already exists there. Thumbnails are rendered at
// the size of the size class the requested size falls into, so any request
// within a class is served by the same thumbnail.
func (c *Handler) GenerateThumbnail(ctx context.Context, item schema.Item, size int) (schema.Result, error) {
	if c.root == nil {
		return schema.ResultGenerated, ErrClosed
	}

	if size < MinSize || size > MaxSize {
		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w: %d", ErrInvalidSize, size)
	}

	if !item.IsRegular() {
		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w: %s", schema.ErrItemNotRegular, item.Path())
	}

	target := bucketFor(size)
	name := thumbnailName(item.URI(), size)
	failName := filepath.Join(failDirName, AppName, filepath.Base(name))
	mtime := strconv.FormatInt(item.ModTime().Unix(), 10)

	if !c.options.ForceExtract {
		if c.isCurrent(name, item.URI(), mtime, target.size) {
			return schema.ResultCached, nil
		}

		if c.isCurrent(failName, item.URI(), mtime, 0) {
			return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w: %s", ErrPreviouslyFailed, item.Path())
		}
	}

	if err := ctx.Err(); err != nil {
		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w", err)
	}

	img, format, err := decodeImage(item, c.options.MaxPixels)
	if err != nil {
		if errors.Is(err, schema.ErrItemNotRegular) || errors.Is(err, schema.ErrItemReleased) {
			return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w", err)
		}

		c.recordFailure(failName, item, mtime)

		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %s: %w", item.Path(), err)
	}

	thumb := scaleToFit(img, target.size)

	data, err := encodeThumbnail(thumb, []textEntry{
		{keyURI, item.URI()},
		{keyMTime, mtime},
		{keySize, strconv.FormatInt(item.Size(), 10)},
		{keyMimetype, "image/" + format},
		{keyImageWidth, strconv.Itoa(img.Bounds().Dx())},
		{keyImageHeight, strconv.Itoa(img.Bounds().Dy())},
		{keySoftware, AppName},
	})
	if err != nil {
		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w", err)
	}

	if err := c.store(name, data); err != nil {
		return schema.ResultGenerated, fmt.Errorf("(thumbcache) %w", err)
	}

	return schema.ResultGenerated, nil
}

// isCurrent reports whether a stored thumbnail (or failure record) exists for
// the given URI and modification time. A thumbnail must also be as large as
// its size class, or as the original image where that is smaller. A minSide
// of zero skips the dimension check.
func (c *Handler) isCurrent(name string, uri string, mtime string, minSide int) bool {
	info, err := c.readMetadata(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Debug("Unreadable cached thumbnail (will be regenerated)",
				"path", filepath.Join(c.baseDir, name),
				"err", err,
			)
		}

		return false
	}

	if info.texts[keyURI] != uri || info.texts[keyMTime] != mtime {
		return false
	}

	if minSide > 0 {
		origWidth, errW := strconv.Atoi(info.texts[keyImageWidth])
		origHeight, errH := strconv.Atoi(info.texts[keyImageHeight])
		if errW == nil && errH == nil {
			minSide = min(minSide, max(origWidth, origHeight))
		}

		if max(info.width, info.height) < minSide {
			return false
		}
	}

	return true
}

// recordFailure stores a failure record for an item, so that unchanged items
// are not attempted again. Failing to do so is not an error of the extraction.
func (c *Handler) recordFailure(failName string, item schema.Item, mtime string) {
	marker := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	data, err := encodeThumbnail(marker, []textEntry{
		{keyURI, item.URI()},
		{keyMTime, mtime},
		{keySoftware, AppName},
	})
	if err == nil {
		err = c.store(failName, data)
	}

	if err != nil {
		slog.Debug("Failed to record thumbnail failure",
			"path", item.Path(),
			"err", err,
		)
	}
}

// thumbnailName returns the cache-relative name of the thumbnail of an URI
// for a given size.
func thumbnailName(uri string, size int) string {
	sum := md5.Sum([]byte(uri)) //nolint:gosec

	return filepath.Join(bucketFor(size).dir, hex.EncodeToString(sum[:])+".png")
}
