// Package main is the entry point for the chatterd key debounce daemon.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chatterd/chatterd/internal/app"
	"github.com/chatterd/chatterd/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	fl := parseFlags()

	cfg, err := config.Resolve(fl.thresholdArg, fl.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatterd: %v\n", err)
		return 1
	}

	if fl.printConfig {
		out, err := cfg.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "chatterd: %v\n", err)
			return 1
		}
		fmt.Println(out)
		return 0
	}

	application, err := app.New(app.Options{
		Config:   cfg,
		LogLevel: fl.logLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatterd: %v\n", err)
		return 1
	}

	// Ensure teardown on all exit paths.
	defer application.Shutdown()

	if err := application.Run(); err != nil {
		application.Logger().Error("event loop: %v", err)
		return 1
	}
	return 0
}

type flags struct {
	configPath   string
	logLevel     string
	printConfig  bool
	thresholdArg string
}

func parseFlags() flags {
	var fl flags
	var showVersion bool

	flag.StringVar(&fl.configPath, "config", "", "Path to JSON configuration file")
	flag.StringVar(&fl.configPath, "c", "", "Path to JSON configuration file (shorthand)")
	flag.StringVar(&fl.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&fl.printConfig, "print-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "chatterd - suppresses mechanical key bounce system-wide\n\n")
		fmt.Fprintf(os.Stderr, "Usage: chatterd [options] [threshold-ms]\n\n")
		fmt.Fprintf(os.Stderr, "The optional positional argument is the debounce threshold in whole\n")
		fmt.Fprintf(os.Stderr, "milliseconds; absent or zero means %d ms.\n\n", config.DefaultThresholdMS)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chatterd                Run with the %d ms default\n", config.DefaultThresholdMS)
		fmt.Fprintf(os.Stderr, "  chatterd 35             Run with a 35 ms threshold\n")
		fmt.Fprintf(os.Stderr, "  chatterd -c /etc/chatterd.json\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("chatterd %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch fl.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "chatterd: invalid log level %q (must be debug, info, warn, or error)\n", fl.logLevel)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		fl.thresholdArg = args[0]
	}

	return fl
}
