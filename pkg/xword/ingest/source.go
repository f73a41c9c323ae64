package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/xword/pkg/xword/config"
	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/lexicon"
	"github.com/cognicore/xword/pkg/xword/merge"
	"github.com/cognicore/xword/pkg/xword/score"
)

// Status of a registered source after reading.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not found"
)

// ReadStats counts what happened to the lines of one source.
type ReadStats struct {
	Parsed     int // record lines the parser accepted
	Skipped    int // non-blank, non-comment lines rejected by parser or normalizer
	Qualifying int // lines whose word passed normalization
	Unique     int // distinct words after folding duplicates
	Duplicates int // qualifying lines repeating an earlier word
}

// SourceResult is one source's contribution before merging.
type SourceResult struct {
	Source config.Source
	Status Status
	Stats  ReadStats
	Scores map[string]int // folded by max, scores in [1, 100]
}

// Reader turns registered source files into per-source score maps.
type Reader struct {
	Dir        string
	Normalizer lexicon.Normalizer
	Scorer     *score.Scorer
	// Logger receives warnings (missing sources). nil means no logging.
	Logger *log.Logger
}

// NewReader creates a reader for sources inside dir.
func NewReader(dir string, n lexicon.Normalizer) *Reader {
	return &Reader{
		Dir:        dir,
		Normalizer: n,
		Scorer:     score.Default(),
	}
}

// ReadSource reads and parses one source. A missing file is not an error:
// the result has StatusNotFound. Other I/O failures are returned.
func (r *Reader) ReadSource(ctx context.Context, src config.Source) (SourceResult, error) {
	res := SourceResult{Source: src, Status: StatusOK, Scores: map[string]int{}}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	path := filepath.Join(r.Dir, src.File)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = StatusNotFound
			r.warnf("WARNING: source %s not found, skipping (%v)", path, internalerr.ErrSourceNotFound)
			return res, nil
		}
		return res, fmt.Errorf("read source %s: %w", path, err)
	}

	lines, err := r.lines(src, data)
	if err != nil {
		return res, fmt.Errorf("read source %s: %w", path, err)
	}

	if src.IsScored() {
		r.parseScored(lines, &res)
	} else {
		r.parseUnscored(lines, &res)
	}
	res.Stats.Unique = len(res.Scores)
	return res, nil
}

func (r *Reader) lines(src config.Source, data []byte) ([]string, error) {
	if src.SourceFormat() == config.FormatHTML {
		return ExtractLines(bytes.NewReader(data))
	}
	return strings.Split(string(data), "\n"), nil
}

func (r *Reader) parseScored(lines []string, res *SourceResult) {
	for _, line := range lines {
		if IsBlankOrComment(line) {
			continue
		}
		raw, s, ok := ParseLine(line)
		if !ok {
			res.Stats.Skipped++
			continue
		}
		res.Stats.Parsed++

		word, ok := r.Normalizer.Normalize(raw)
		if !ok {
			res.Stats.Skipped++
			continue
		}
		res.Stats.Qualifying++
		if merge.Fold(res.Scores, word, s) {
			res.Stats.Duplicates++
		}
	}
}

func (r *Reader) parseUnscored(lines []string, res *SourceResult) {
	seen := make(map[string]bool)
	var words []string

	for _, line := range lines {
		if IsBlankOrComment(line) {
			continue
		}
		raw, ok := ParseWord(line)
		if !ok {
			res.Stats.Skipped++
			continue
		}
		res.Stats.Parsed++

		word, ok := r.Normalizer.Normalize(raw)
		if !ok {
			res.Stats.Skipped++
			continue
		}
		res.Stats.Qualifying++
		if seen[word] {
			res.Stats.Duplicates++
			continue
		}
		seen[word] = true
		words = append(words, word)
	}

	scorer := r.Scorer
	if scorer == nil {
		scorer = score.Default()
	}
	res.Scores = scorer.ScoreSource(words)
}

func (r *Reader) warnf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
