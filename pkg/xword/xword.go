// Package xword builds the crossword master dictionary: it reads every
// registered word list, scores and merges the entries, writes the master file
// atomically and summarizes the result.
package xword

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cognicore/xword/pkg/xword/analytics"
	"github.com/cognicore/xword/pkg/xword/config"
	"github.com/cognicore/xword/pkg/xword/dict"
	"github.com/cognicore/xword/pkg/xword/ingest"
	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/lexicon"
	"github.com/cognicore/xword/pkg/xword/report"
	"github.com/cognicore/xword/pkg/xword/store/sqlite"
)

// Options configures a Builder
type Options struct {
	Config config.Config
	// SQLitePath, when set, archives the finished build in that database.
	SQLitePath string
	Logger     *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Builder runs complete dictionary builds.
type Builder struct {
	cfg    config.Config
	dbPath string
	logger *log.Logger
	now    func() time.Time
}

// New creates a Builder with the given options
func New(opts Options) *Builder {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Builder{
		cfg:    opts.Config,
		dbPath: opts.SQLitePath,
		logger: opts.Logger,
		now:    now,
	}
}

// Build runs the whole pipeline once. On error the previous output file, if
// any, is left untouched.
func (b *Builder) Build(ctx context.Context) (*report.Report, error) {
	start := b.now()

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	outDir := filepath.Dir(b.cfg.Output)
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: output directory %s does not exist", internalerr.ErrInvalidConfig, outDir)
	}

	p := ingest.NewPipeline(b.cfg)
	p.Logger = b.logger
	res, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	entries := res.Master.Entries()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generated := b.now()
	h := dict.Header{
		Generated:  generated,
		MinLen:     b.cfg.MinLen,
		MaxLen:     b.cfg.MaxLen,
		Sources:    b.cfg.SourceFiles(),
		Regenerate: b.cfg.Regenerate,
	}
	size, err := dict.WriteFile(b.cfg.Output, h, entries)
	if err != nil {
		return nil, err
	}
	b.logf("wrote %d words to %s", len(entries), b.cfg.Output)

	if b.dbPath != "" {
		if err := b.archive(ctx, res, entries, generated); err != nil {
			return nil, fmt.Errorf("archive build %s: %w", res.RunID, err)
		}
	}

	return &report.Report{
		RunID:      res.RunID,
		Sources:    res.Sources,
		Stats:      analytics.Analyze(entries),
		OutputPath: b.cfg.Output,
		OutputSize: size,
		Elapsed:    b.now().Sub(start),
	}, nil
}

func (b *Builder) archive(ctx context.Context, res *ingest.Result, entries []lexicon.Entry, generated time.Time) error {
	st, err := sqlite.Open(ctx, b.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.SaveBuild(ctx, sqlite.Build{
		ID:        res.RunID,
		Generated: generated,
		MinLen:    b.cfg.MinLen,
		MaxLen:    b.cfg.MaxLen,
		Output:    b.cfg.Output,
		Sources:   res.Sources,
		Entries:   entries,
	})
}

func (b *Builder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}
