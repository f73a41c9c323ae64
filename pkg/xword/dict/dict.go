// Package dict reads and writes the master dictionary file.
//
// File format (UTF-8, LF):
//
//	# Crossword Master Dictionary
//	# Generated: 2006-01-02
//	# Format: WORD;SCORE (1-100)
//	# Words: 3 (lengths 2-5)
//	#
//	# Sources: a.dict, b.dict
//	#
//	# Merge strategy: highest score wins across all sources
//	# To regenerate: go run ./cmd/xwdict
//	#
//	CAT;70
//	DOG;60
//	BIRD;50
//
// Downstream consumers parse the header, so its lines and their order are
// fixed. Only the Generated line changes between identical runs.
package dict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// GeneratedPrefix starts the only non-deterministic header line.
const GeneratedPrefix = "# Generated: "

// Header carries the metadata written above the records.
type Header struct {
	Generated  time.Time
	MinLen     int
	MaxLen     int
	Sources    []string // file names in registry order
	Regenerate string   // command line that rebuilds the file
}

// Lines renders the header block.
func (h Header) Lines(count int) []string {
	return []string{
		"# Crossword Master Dictionary",
		GeneratedPrefix + h.Generated.Format("2006-01-02"),
		"# Format: WORD;SCORE (1-100)",
		fmt.Sprintf("# Words: %d (lengths %d-%d)", count, h.MinLen, h.MaxLen),
		"#",
		"# Sources: " + strings.Join(h.Sources, ", "),
		"#",
		"# Merge strategy: highest score wins across all sources",
		"# To regenerate: " + h.Regenerate,
		"#",
	}
}

// Validate checks the invariants every emitted entry must satisfy:
// admissible word, score in range, strictly increasing dictionary order
// (which also rules out duplicates).
func Validate(entries []lexicon.Entry, n lexicon.Normalizer) error {
	for i, e := range entries {
		if !n.Admissible(e.Word) {
			return fmt.Errorf("%w: entry %d word %q is not admissible", internalerr.ErrInvariant, i, e.Word)
		}
		if !lexicon.ValidScore(e.Score) {
			return fmt.Errorf("%w: entry %d %s has score %d", internalerr.ErrInvariant, i, e.Word, e.Score)
		}
		if i > 0 && !lexicon.Less(entries[i-1].Word, e.Word) {
			return fmt.Errorf("%w: entry %d %s does not follow %s", internalerr.ErrInvariant, i, e.Word, entries[i-1].Word)
		}
	}
	return nil
}

// Write emits the header and records to w. entries must already be sorted.
func Write(w io.Writer, h Header, entries []lexicon.Entry) error {
	bw := bufio.NewWriter(w)
	for _, line := range h.Lines(len(entries)) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s;%d\n", e.Word, e.Score); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile validates entries and atomically replaces path: the dictionary
// is written to a temporary sibling file which is renamed over path. On any
// failure the temporary file is removed and path is left untouched.
// It returns the size of the written file.
func WriteFile(path string, h Header, entries []lexicon.Entry) (int64, error) {
	n := lexicon.NewNormalizer(h.MinLen, h.MaxLen)
	if err := Validate(entries, n); err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file in %s: %v", internalerr.ErrOutputWrite, dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := Write(tmp, h, entries); err != nil {
		return 0, fmt.Errorf("%w: write %s: %v", internalerr.ErrOutputWrite, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync %s: %v", internalerr.ErrOutputWrite, tmpPath, err)
	}
	info, err := tmp.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %v", internalerr.ErrOutputWrite, tmpPath, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("%w: chmod %s: %v", internalerr.ErrOutputWrite, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: close %s: %v", internalerr.ErrOutputWrite, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("%w: rename to %s: %v", internalerr.ErrOutputWrite, path, err)
	}
	committed = true
	return info.Size(), nil
}

// Read parses a master dictionary, skipping header comments and blank lines.
func Read(r io.Reader) ([]lexicon.Entry, error) {
	var entries []lexicon.Entry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndexByte(line, ';')
		if idx < 0 {
			return nil, fmt.Errorf("%w: line %d: %q", internalerr.ErrInvalidLine, lineNo, line)
		}
		score, err := strconv.Atoi(line[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q: %v", internalerr.ErrInvalidLine, lineNo, line, err)
		}
		entries = append(entries, lexicon.Entry{Word: line[:idx], Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadFile parses the master dictionary at path.
func ReadFile(path string) ([]lexicon.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
