package ingest

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/xword/pkg/xword/config"
	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/merge"
)

// SourceReport is the per-source outcome of a run.
type SourceReport struct {
	Source config.Source
	Status Status
	Read   ReadStats
	Merge  merge.Counters
}

// Result holds the merged master dictionary and the per-source reports in
// registry order.
type Result struct {
	RunID   string
	Master  *merge.Master
	Sources []SourceReport
}

// Pipeline orchestrates one build:
// registry -> read/parse/normalize (optionally parallel) -> serial merge
type Pipeline struct {
	cfg    config.Config
	reader *Reader
	// Logger receives progress and warnings. nil means no logging.
	Logger *log.Logger
}

// NewPipeline creates a pipeline for cfg. cfg should already be validated.
func NewPipeline(cfg config.Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		reader: NewReader(cfg.SourceDir, cfg.Normalizer()),
	}
}

// Run reads every registered source and merges them in registry order.
// ctx is checked at every source boundary; nothing is persisted here.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	info, err := os.Stat(p.cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: source directory %s: %v", internalerr.ErrInvalidConfig, p.cfg.SourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: source directory %s is not a directory", internalerr.ErrInvalidConfig, p.cfg.SourceDir)
	}

	p.reader.Logger = p.Logger

	results, err := p.readAll(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:   newRunID(),
		Master:  merge.NewMaster(),
		Sources: make([]SourceReport, 0, len(results)),
	}
	for i := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sr := &results[i]
		counters := res.Master.Merge(sr.Scores)
		sr.Scores = nil

		res.Sources = append(res.Sources, SourceReport{
			Source: sr.Source,
			Status: sr.Status,
			Read:   sr.Stats,
			Merge:  counters,
		})
		p.logf("merged %s: %d new, %d upgraded, %d kept", sr.Source.File,
			counters.NewWords, counters.UpgradedScores, counters.KeptExisting)
	}
	return res, nil
}

// readAll returns one SourceResult per registry entry, in registry order.
func (p *Pipeline) readAll(ctx context.Context) ([]SourceResult, error) {
	sources := p.cfg.Sources
	results := make([]SourceResult, len(sources))

	if p.cfg.Workers <= 1 || len(sources) == 1 {
		for i, src := range sources {
			r, err := p.reader.ReadSource(ctx, src)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(p.cfg.Workers, len(sources))
	pool.Start(ctx)

	var submitErr error
	for i, src := range sources {
		err := pool.SubmitCtx(ctx, func(ctx context.Context) error {
			r, err := p.reader.ReadSource(ctx, src)
			if err != nil {
				cancel()
				return err
			}
			// Each job owns its own slot.
			results[i] = r
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}

	if err := pool.Close(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}
	// Workers exit without draining the queue once ctx is done.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

func newRunID() string {
	return ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
}
