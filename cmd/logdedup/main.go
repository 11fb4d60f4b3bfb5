package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ardanlabs/trampolinegen/logfilter"
	"github.com/ardanlabs/trampolinegen/logger"
)

type config struct {
	marker   string
	logLevel string
	paths    []string
}

func parseArgs(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("logdedup", flag.ContinueOnError)

	cfg := config{}
	fs.StringVar(&cfg.marker, "marker", logfilter.DefaultMarker, "Substring identifying a warning line")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: logdedup [-marker text] [-log-level level] file...\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if fs.NArg() == 0 {
		return config{}, fmt.Errorf("at least one log file is required")
	}
	if cfg.marker == "" {
		return config{}, fmt.Errorf("-marker must not be empty")
	}
	cfg.paths = fs.Args()

	if cfg.logLevel == "" {
		cfg.logLevel = getenv("LOG_LEVEL")
	}
	if cfg.logLevel == "" {
		cfg.logLevel = "info"
	}

	return cfg, nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := logger.InitLogger(cfg.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	log := logger.GetLogger()

	failed := false
	for _, path := range cfg.paths {
		removed, err := logfilter.DedupFile(path, cfg.marker)
		if err != nil {
			log.Error("dedup failed", "path", path, "err", err)
			failed = true
			continue
		}
		log.Info("deduplicated", "path", path, "removed", removed)
	}

	if failed {
		os.Exit(1)
	}
}
