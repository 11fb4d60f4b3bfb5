package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ardanlabs/trampolinegen/generator"
	"github.com/ardanlabs/trampolinegen/logger"
	"github.com/ardanlabs/trampolinegen/parser"
	"github.com/ardanlabs/trampolinegen/typemap"
)

const defaultDeclPath = "trampoline/src/lib.rs"

type config struct {
	declPath string
	logLevel string
}

func parseArgs(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("trampolinegen", flag.ContinueOnError)

	cfg := config{}
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: trampolinegen [-log-level level] [declarations.rs]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch fs.NArg() {
	case 0:
		cfg.declPath = defaultDeclPath
	case 1:
		cfg.declPath = fs.Arg(0)
	default:
		return config{}, fmt.Errorf("expected at most one declaration file, got %d", fs.NArg())
	}

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

	out, err := run(cfg.declPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(out)
}

// run converts the declaration file at path and returns the generated text.
func run(path string) (string, error) {
	log := logger.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading declarations: %w", err)
	}

	src, err := parser.Decode(data)
	if err != nil {
		return "", err
	}

	funcs, err := parser.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	log.Info("extracted declarations", "path", path, "functions", len(funcs))

	mapper := typemap.New()
	gen := generator.New(funcs, mapper)

	out, err := gen.Generate()
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}

	for _, u := range mapper.Unresolved() {
		log.Warn("type passed through unmapped", "token", u.Token, "suspicious", u.Suspicious)
	}

	return out, nil
}
