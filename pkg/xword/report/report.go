// Package report renders the human-readable build summary printed after a
// master dictionary is written.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/xword/pkg/xword/analytics"
	"github.com/cognicore/xword/pkg/xword/ingest"
)

// Report gathers everything the summary prints.
type Report struct {
	RunID      string
	Sources    []ingest.SourceReport
	Stats      analytics.Stats
	OutputPath string
	OutputSize int64
	Elapsed    time.Duration
}

// Render writes the report to w.
func Render(w io.Writer, r Report) error {
	p := &printer{w: w}

	p.line("Crossword master dictionary build %s", r.RunID)
	p.line("")
	p.line("Sources:")
	for _, s := range r.Sources {
		p.line("  %s (priority %d)", s.Source.File, s.Source.Priority)
		if s.Source.Description != "" {
			p.line("    description:     %s", s.Source.Description)
		}
		p.line("    status:          %s", s.Status)
		if s.Status == ingest.StatusNotFound {
			continue
		}
		p.line("    parsed:          %s", humanize.Comma(int64(s.Read.Parsed)))
		p.line("    qualifying:      %s (%s unique)", humanize.Comma(int64(s.Read.Qualifying)), humanize.Comma(int64(s.Read.Unique)))
		p.line("    new words:       %s", humanize.Comma(int64(s.Merge.NewWords)))
		p.line("    upgraded scores: %s", humanize.Comma(int64(s.Merge.UpgradedScores)))
		p.line("    kept existing:   %s", humanize.Comma(int64(s.Merge.KeptExisting)))
		p.line("    skipped invalid: %s", humanize.Comma(int64(s.Read.Skipped)))
	}

	p.line("")
	p.line("Total words: %s", humanize.Comma(int64(r.Stats.TotalWords)))
	p.line("")
	p.line("Words by length:")
	for _, lc := range r.Stats.ByLength {
		p.line("  %d letters: %s", lc.Length, humanize.Comma(int64(lc.Count)))
	}

	p.line("")
	p.line("Score distribution:")
	for _, b := range r.Stats.Buckets {
		p.line("  %3d-%-3d  %8s  (%5.1f%%)", b.Bucket.Lo, b.Bucket.Hi, humanize.Comma(int64(b.Count)), b.Percent)
	}

	p.line("")
	p.line("Sample high-scoring words (score >= %d):", analytics.SampleThreshold)
	for _, lc := range r.Stats.ByLength {
		samples := r.Stats.Samples[lc.Length]
		if len(samples) == 0 {
			continue
		}
		words := make([]string, len(samples))
		for i, e := range samples {
			words[i] = fmt.Sprintf("%s(%d)", e.Word, e.Score)
		}
		p.line("  %d letters: %s", lc.Length, strings.Join(words, ", "))
	}

	p.line("")
	p.line("Output: %s (%s)", r.OutputPath, humanize.Bytes(uint64(r.OutputSize)))
	p.line("Elapsed: %s", r.Elapsed.Round(time.Millisecond))

	return p.err
}

// printer remembers the first write error so Render can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}
