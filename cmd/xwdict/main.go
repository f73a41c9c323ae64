package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cognicore/xword/pkg/xword"
	"github.com/cognicore/xword/pkg/xword/config"
	"github.com/cognicore/xword/pkg/xword/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("xwdict: %v", err)
	}
}

// run parses args, builds the master dictionary and prints the report to
// stdout. Warnings and progress go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("xwdict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		registry = fs.String("config", "", "YAML source registry (optional, built-in registry if empty)")
		srcDir   = fs.String("sources", "", "Directory containing the word lists")
		output   = fs.String("output", "", "Master dictionary output path")
		minLen   = fs.Int("min", 0, "Minimum word length (default 2)")
		maxLen   = fs.Int("max", 0, "Maximum word length (default 5)")
		workers  = fs.Int("workers", 0, "Sources parsed in parallel (default 1)")
		dbPath   = fs.String("sqlite", "", "Optional: archive the build in this SQLite database")
		quiet    = fs.Bool("quiet", false, "Only print warnings and errors")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loader := config.Loader{
		RegistryPath: *registry,
		SourceDir:    *srcDir,
		Output:       *output,
		MinLen:       *minLen,
		MaxLen:       *maxLen,
		Workers:      *workers,
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logger := log.New(stderr, "", log.LstdFlags)
	opts := xword.Options{
		Config:     *cfg,
		SQLitePath: *dbPath,
		Logger:     logger,
	}
	if *quiet {
		opts.Logger = log.New(&warningsOnly{w: stderr}, "", log.LstdFlags)
	}

	rep, err := xword.New(opts).Build(ctx)
	if err != nil {
		return err
	}

	if *quiet {
		return nil
	}
	return report.Render(stdout, *rep)
}
