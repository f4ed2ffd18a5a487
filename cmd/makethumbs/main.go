// Command makethumbs walks a directory tree and generates a thumbnail of the
// given size for every file into the user's thumbnail cache.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/desertwitch/makethumbs/internal/configuration"
	"github.com/desertwitch/makethumbs/internal/filter"
	"github.com/desertwitch/makethumbs/internal/schema"
	"github.com/desertwitch/makethumbs/internal/ui"
)

const uiWaitInterval = 10 * time.Millisecond

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		slog.Warn("Received signal, stopping after the current item...",
			"signal", sig.String(),
		)
		cancel()
	}()
}

func startApp(ctx context.Context, wg *sync.WaitGroup, app *App) {
	defer wg.Done()

	if app.uiHandler != nil {
		for !app.uiHandler.Ready.Load() && !app.uiHandler.Failed.Load() {
			select {
			case <-ctx.Done():
				ExitCode = 1

				return
			case <-time.After(uiWaitInterval):
			}
		}
	}

	if err := app.Launch(ctx); err != nil {
		ExitCode = 1
	}
}

func startUI(wg *sync.WaitGroup, app *App, logManager *SlogManager, level slog.Leveler) {
	defer wg.Done()

	if app.uiHandler == nil {
		return
	}

	logManager.AddHandler(uiHandlerName, newTintHandler(app.uiHandler.LogWriter, level))
	logManager.RemoveHandler(terminalHandlerName)

	defer func() {
		logManager.AddHandler(terminalHandlerName, newTintHandler(os.Stdout, level))
		logManager.RemoveHandler(uiHandlerName)
	}()

	if err := app.LaunchUI(); err != nil {
		slog.Error("UI failure: falling back to terminal.", "err", err)
	}
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts, req, err := parseCommandLine(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			ExitCode = 1
		}

		return
	}

	if opts.version {
		fmt.Fprintln(os.Stdout, "makethumbs", versionString())

		return
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	logManager := setupLogging(os.Stdout, level)
	setupSignalHandlers(cancel)

	memObserver := newMemoryObserver(ctx)
	defer memObserver.Stop()

	cpuProfiler := NewCPUProfiler(ctx, opts.cpuProfile)
	defer cpuProfiler.Stop()

	allocProfiler := NewAllocProfiler(ctx, opts.memProfile)
	defer allocProfiler.Stop()

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	config, err := loadConfiguration(configHandler, opts)
	if err != nil {
		slog.Error("Failed to load the configuration.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	fileFilter, err := filter.Parse(config.Filter)
	if err != nil {
		slog.Error("Failed to parse the filter.",
			"err", fmt.Errorf("%w: %w", ErrInvalidFilter, err),
		)
		ExitCode = 1

		return
	}

	osProvider := &schema.OS{}

	cache, err := acquireService(osProvider, config)
	if err != nil {
		ExitCode = 1

		return
	}
	defer cache.Close()

	walkerHandler := newWalker(osProvider, config.MaxPath, fileFilter, cache.BaseDir())

	var uiHandler *ui.Handler
	if opts.ui {
		uiHandler = ui.NewHandler(ctx, cancel, walkerHandler.Statistics())
	}

	app := NewApp(req, cache, walkerHandler, uiHandler)

	var wg sync.WaitGroup

	wg.Add(1)
	go startUI(&wg, app, logManager, level)

	wg.Add(1)
	go startApp(ctx, &wg, app)

	wg.Wait()

	memObserver.Stop()
	app.Summary(memObserver.GetMaxAlloc())
}

func versionString() string {
	if Version == "" {
		return "(devel)"
	}

	return Version
}
