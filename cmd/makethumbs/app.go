package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/desertwitch/makethumbs/internal/configuration"
	"github.com/desertwitch/makethumbs/internal/filesystem"
	"github.com/desertwitch/makethumbs/internal/filter"
	"github.com/desertwitch/makethumbs/internal/pathing"
	"github.com/desertwitch/makethumbs/internal/schema"
	"github.com/desertwitch/makethumbs/internal/shellitem"
	"github.com/desertwitch/makethumbs/internal/thumbcache"
	"github.com/desertwitch/makethumbs/internal/ui"
	"github.com/desertwitch/makethumbs/internal/validation"
	"github.com/desertwitch/makethumbs/internal/walker"
	"github.com/dustin/go-humanize"
)

// App is a single thumbnail run over a directory tree.
type App struct {
	request       *validation.Request
	service       schema.ThumbnailService
	walkerHandler *walker.Handler
	uiHandler     *ui.Handler
}

func NewApp(request *validation.Request,
	service schema.ThumbnailService,
	walkerHandler *walker.Handler,
	uiHandler *ui.Handler,
) *App {
	return &App{
		request:       request,
		service:       service,
		walkerHandler: walkerHandler,
		uiHandler:     uiHandler,
	}
}

// Launch runs the traversal and returns its first structural error.
func (app *App) Launch(ctx context.Context) error {
	slog.Debug("Starting traversal",
		"path", app.request.Directory,
		"size", app.request.Size,
	)

	if err := app.walkerHandler.Run(ctx, app.request.Directory, app.service, app.request.Size); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	return nil
}

func (app *App) LaunchUI() error {
	if err := app.uiHandler.Launch(); err != nil {
		return fmt.Errorf("(app-ui) %w", err)
	}

	return nil
}

// Summary logs the counters of the finished traversal.
func (app *App) Summary(maxAlloc uint64) {
	progress := app.walkerHandler.Statistics().Snapshot()

	args := []any{
		"directories", progress.Directories,
		"files", progress.Files,
		"generated", progress.Generated,
		"cached", progress.Cached,
		"failed", progress.Failed,
		"skipped", progress.Skipped,
		"read", humanize.Bytes(progress.Bytes),
		"elapsed", progress.Elapsed().Round(time.Millisecond),
		"maxAlloc", humanize.IBytes(maxAlloc),
	}

	if progress.Err != nil {
		slog.Error("Thumbnail run failed.", append(args, "err", progress.Err)...)

		return
	}

	slog.Info("Thumbnail run completed.", args...)
}

// acquireService opens the thumbnail cache the configuration points to.
func acquireService(osProvider *schema.OS, config *configuration.Config) (*thumbcache.Handler, error) {
	cache, err := thumbcache.NewHandler(osProvider, thumbcache.Options{
		CacheDir:     config.CacheDir,
		ForceExtract: config.ForceExtract,
		VerifyWrites: config.VerifyWrites,
	})
	if err != nil {
		slog.Error("Accessing thumbnail cache failed",
			"err", err,
		)

		return nil, fmt.Errorf("(app) %w: %w", ErrServiceAcquisition, err)
	}

	slog.Debug("Thumbnail cache acquired",
		"path", cache.BaseDir(),
	)

	return cache, nil
}

// newWalker returns a walker over the real filesystem that never descends
// into the thumbnail cache.
func newWalker(osProvider *schema.OS, maxPath int, fileFilter *filter.Filter, cacheDir string) *walker.Handler {
	walkerHandler := walker.NewHandler(
		filesystem.NewHandler(osProvider),
		shellitem.NewResolver(osProvider),
		pathing.NewHandler(maxPath),
		fileFilter,
	)
	walkerHandler.SetExcludedDirs(cacheDir)

	return walkerHandler
}
