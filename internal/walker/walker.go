// Package walker implements the depth-first traversal of a directory tree,
// requesting a thumbnail from a [schema.ThumbnailService] for every file.
//
// The traversal is sequential and all-or-nothing: any structural error (a
// path that is too long, a directory that cannot be enumerated, a file that
// cannot be resolved) aborts the whole traversal. The outcome of the single
// thumbnail requests does not affect the traversal, it is handed to a
// [ResultFunc] instead.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/makethumbs/internal/schema"
)

type pathingProvider interface {
	CheckDirectory(dir string) error
	Join(dir string, name string) (string, error)
}

type filterProvider interface {
	Match(relPath string) bool
}

// ResultFunc receives the outcome of every thumbnail request.
type ResultFunc func(path string, res schema.Result, err error)

// Handler is the principal implementation of the directory walker.
type Handler struct {
	lister         schema.DirectoryLister
	resolver       schema.PathResolver
	pathingHandler pathingProvider
	filter         filterProvider
	onResult       ResultFunc
	excluded       map[string]struct{}
	stats          *Statistics
}

// NewHandler returns a pointer to a new walker [Handler]. The filter may be
// nil, in which case every file is processed.
func NewHandler(lister schema.DirectoryLister, resolver schema.PathResolver, pathingHandler pathingProvider, filter filterProvider) *Handler {
	return &Handler{
		lister:         lister,
		resolver:       resolver,
		pathingHandler: pathingHandler,
		filter:         filter,
		onResult:       LogResult,
		stats:          &Statistics{},
	}
}

// SetResultFunc replaces the [ResultFunc], which is [LogResult] by default.
func (w *Handler) SetResultFunc(fn ResultFunc) {
	if fn == nil {
		fn = LogResult
	}
	w.onResult = fn
}

// SetExcludedDirs sets directories that are never descended into, such as
// the thumbnail cache itself when it lies within the traversed tree.
func (w *Handler) SetExcludedDirs(dirs ...string) {
	w.excluded = make(map[string]struct{}, len(dirs))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		w.excluded[absPath(dir)] = struct{}{}
	}
}

func (w *Handler) isExcluded(dir string) bool {
	if len(w.excluded) == 0 {
		return false
	}

	_, ok := w.excluded[absPath(dir)]

	return ok
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}

// Statistics returns the counters of the traversal.
func (w *Handler) Statistics() *Statistics {
	return w.stats
}

// Run traverses the directory tree below path, requesting a thumbnail of the
// given size from the service for every file. It returns nil if the whole
// tree was traversed, otherwise the first error that occurred (which was
// already reported).
func (w *Handler) Run(ctx context.Context, path string, service schema.ThumbnailService, size int) error {
	root := filepath.Clean(path)

	w.stats.start()

	err := w.walkDir(ctx, root, root, service, size)

	w.stats.finish(err)

	return err
}

func (w *Handler) walkDir(ctx context.Context, root string, dir string, service schema.ThumbnailService, size int) error {
	if w.isExcluded(dir) {
		w.stats.skipped.Add(1)
		slog.Warn("Skipped excluded directory",
			"path", dir,
		)

		return nil
	}

	if err := w.pathingHandler.CheckDirectory(dir); err != nil {
		slog.Error("Directory path is too long.",
			"path", dir,
		)

		return fmt.Errorf("(walker) %w: %w", ErrPathTooLong, err)
	}

	cursor, err := w.lister.Open(dir)
	if err != nil {
		slog.Error("Enumerating files in directory failed",
			"path", dir,
			"err", err,
		)

		return fmt.Errorf("(walker) %w: %w", ErrEnumeration, err)
	}
	defer cursor.Close()

	w.stats.directories.Add(1)

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("(walker) %w", err)
		}

		entry, err := cursor.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			slog.Error("Enumerating files in directory failed",
				"path", dir,
				"err", err,
			)

			return fmt.Errorf("(walker) %w: %w", ErrEnumeration, err)
		}

		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		fullPath, err := w.pathingHandler.Join(dir, entry.Name)
		if err != nil {
			slog.Error("Path of item is too long!",
				"path", dir,
				"name", entry.Name,
			)

			return fmt.Errorf("(walker) %w: %w", ErrPathTooLong, err)
		}

		if entry.IsDir {
			if err := w.walkDir(ctx, root, fullPath, service, size); err != nil {
				return err
			}

			continue
		}

		if err := w.processFile(ctx, root, fullPath, service, size); err != nil {
			return err
		}
	}
}

func (w *Handler) processFile(ctx context.Context, root string, fullPath string, service schema.ThumbnailService, size int) error {
	if w.filter != nil {
		relPath, err := filepath.Rel(root, fullPath)
		if err == nil && !w.filter.Match(relPath) {
			w.stats.skipped.Add(1)
			slog.Debug("Skipped file (not matching filter)",
				"path", fullPath,
			)

			return nil
		}
	}

	w.stats.files.Add(1)
	w.stats.setCurrent(fullPath)

	slog.Info("Generating thumbnail for " + fullPath)

	item, err := w.resolver.Resolve(fullPath)
	if err != nil {
		if errors.Is(err, schema.ErrItemIsDirectory) {
			w.stats.skipped.Add(1)
			slog.Warn("Skipped linked directory (not followed)",
				"path", fullPath,
			)

			return nil
		}

		slog.Error("Path couldn't be resolved to an item!",
			"path", fullPath,
			"err", err,
		)

		return fmt.Errorf("(walker) %w: %w", ErrResolution, err)
	}
	defer item.Release() //nolint:errcheck

	res, err := service.GenerateThumbnail(ctx, item, size)

	switch {
	case err != nil:
		w.stats.failed.Add(1)
	case res == schema.ResultCached:
		w.stats.cached.Add(1)
	default:
		w.stats.generated.Add(1)
		w.stats.bytes.Add(uint64(max(item.Size(), 0))) //nolint:gosec
	}

	w.onResult(fullPath, res, err)

	return nil
}

// LogResult is the default [ResultFunc]. Failed requests are logged as
// warnings, successful ones on the debug level.
func LogResult(path string, res schema.Result, err error) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}

		slog.Warn("Thumbnail generation failed",
			"path", path,
			"err", err,
		)

		return
	}

	slog.Debug("Thumbnail "+res.String(),
		"path", path,
	)
}
