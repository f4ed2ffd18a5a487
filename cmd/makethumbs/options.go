package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/desertwitch/makethumbs/internal/configuration"
	"github.com/desertwitch/makethumbs/internal/validation"
)

const invalidSizeMessage = "Invalid thumbnail size. It must be between 1 and 1024"

// options are the settings given on the command-line.
type options struct {
	configFile string
	cacheDir   string
	filter     string
	force      bool
	ui         bool
	verbose    bool
	version    bool
	cpuProfile string
	memProfile string

	// set holds the names of all flags given explicitly.
	set map[string]bool
}

// parseCommandLine parses the flags and positional arguments. The returned
// request is nil when only the version was requested. Any problems are
// reported to out before an error is returned.
func parseCommandLine(name string, args []string, out io.Writer) (*options, *validation.Request, error) {
	opts := &options{
		set: make(map[string]bool),
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.configFile, "config", "", "read settings from this configuration file")
	fs.StringVar(&opts.cacheDir, "cache-dir", "", "thumbnail cache directory (default: user cache dir)")
	fs.StringVar(&opts.filter, "filter", "", "comma separated glob patterns selecting files ('!' negates)")
	fs.BoolVar(&opts.force, "force", false, "regenerate thumbnails even if they are up-to-date")
	fs.BoolVar(&opts.ui, "ui", false, "enable the UI")
	fs.BoolVar(&opts.verbose, "verbose", false, "log the outcome of every thumbnail")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	fs.StringVar(&opts.memProfile, "memprofile", "", "write memory profile to this file")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [options] <directory name> <thumbnail size>\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("(main-args) %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if opts.version {
		return opts, nil, nil
	}

	req, err := validation.ValidateRequest(fs.Args())
	if err != nil {
		if errors.Is(err, validation.ErrInvalidSize) {
			fmt.Fprintln(out, invalidSizeMessage)
		} else {
			fs.Usage()
		}

		return nil, nil, fmt.Errorf("(main-args) %w", err)
	}

	return opts, req, nil
}

// loadConfiguration reads the configuration file (if any) and applies the
// explicitly given flags over it.
func loadConfiguration(configHandler *configuration.Handler, opts *options) (*configuration.Config, error) {
	var files []string
	if opts.configFile != "" {
		files = append(files, opts.configFile)
	}

	config, err := configHandler.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("(main-config) %w", err)
	}

	if opts.set["cache-dir"] {
		config.CacheDir = opts.cacheDir
	}

	if opts.set["filter"] {
		config.Filter = opts.filter
	}

	if opts.set["force"] {
		config.ForceExtract = opts.force
	}

	return config, nil
}
