// Roomscript runs a text adventure defined by a directory of location files.
// Usage: roomscript [--version] [--plain] [--trace] [--start <location>] [--script <file>] [<world_directory>]
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/roomscript/cli"
	"github.com/nathoo/roomscript/config"
	"github.com/nathoo/roomscript/engine"
	"github.com/nathoo/roomscript/loader"
	"github.com/nathoo/roomscript/logging"
	"github.com/nathoo/roomscript/types"
	"github.com/nathoo/roomscript/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: roomscript [--version] [--plain] [--trace] [--start <location>] [--script <file>] [<world_directory>]"

// options are the command line settings. Unset fields fall back to the
// environment configuration.
type options struct {
	version    bool
	plain      bool
	trace      bool
	start      string
	scriptFile string
	worldDir   string
}

var errUsage = errors.New(usage)

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			opts.version = true
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--start", "--script":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value\n%w", args[i], errUsage)
			}
			if args[i] == "--start" {
				opts.start = args[i+1]
			} else {
				opts.scriptFile = args[i+1]
			}
			i++
		default:
			if len(args[i]) > 1 && args[i][0] == '-' {
				return opts, fmt.Errorf("unknown flag %s\n%w", args[i], errUsage)
			}
			if opts.worldDir != "" {
				return opts, fmt.Errorf("more than one world directory given\n%w", errUsage)
			}
			opts.worldDir = args[i]
		}
	}
	return opts, nil
}

// apply overlays command line options onto the environment configuration.
func (o options) apply(cfg *config.Config) {
	if o.worldDir != "" {
		cfg.WorldDir = o.worldDir
	}
	if o.start != "" {
		cfg.Start = o.start
	}
	if o.plain {
		cfg.Plain = true
	}
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("roomscript %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}
	opts.apply(cfg)
	logger := logging.Setup(cfg)

	world, err := loader.LoadWithLogger(cfg.WorldDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.New(world, types.LocationID(cfg.Start))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}
	eng.Logger = logger
	logger.Debug("session starting", slog.String("start", cfg.Start), slog.Bool("plain", cfg.Plain))

	// Script mode: read choices from a file, force plain, echo them.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return
	}

	// Use plain CLI if requested or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = opts.trace
		c.Run()
		return
	}

	// Bubble Tea owns the terminal from here on.
	tuiLogger, closeLog, err := logging.SetupTUI(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	eng.Logger = tuiLogger

	if err := tui.Run(eng, opts.trace); err != nil {
		logging.WithError(tuiLogger, err).Error("tui exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
