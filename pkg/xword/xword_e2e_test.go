package xword

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/xword/pkg/xword/config"
	"github.com/cognicore/xword/pkg/xword/dict"
	"github.com/cognicore/xword/pkg/xword/ingest"
	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/lexicon"
	"github.com/cognicore/xword/pkg/xword/merge"
	"github.com/cognicore/xword/pkg/xword/report"
	"github.com/cognicore/xword/pkg/xword/store/sqlite"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	srcDir string
	output string
	cfg    config.Config
}

// newFixture writes files into a temp source dir and registers them in the
// given order.
func newFixture(t *testing.T, files map[string]string, order ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	srcDir := filepath.Join(root, "wordlists")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.SourceDir = srcDir
	cfg.Output = filepath.Join(root, "master.dict")
	cfg.Sources = nil
	for i, name := range order {
		cfg.Sources = append(cfg.Sources, config.Source{File: name, Priority: i + 1})
	}
	return &fixture{srcDir: srcDir, output: cfg.Output, cfg: cfg}
}

func (f *fixture) build(t *testing.T) *report.Report {
	t.Helper()
	rep, err := New(Options{Config: f.cfg, Now: func() time.Time { return fixedNow }}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rep
}

func (f *fixture) entries(t *testing.T) []lexicon.Entry {
	t.Helper()
	entries, err := dict.ReadFile(f.output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return entries
}

func assertEntries(t *testing.T, got, want []lexicon.Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func unscored(f *fixture, file string) {
	no := false
	for i := range f.cfg.Sources {
		if f.cfg.Sources[i].File == file {
			f.cfg.Sources[i].Scored = &no
		}
	}
}

func TestMergeAcrossSources(t *testing.T) {
	f := newFixture(t, map[string]string{
		"s1.dict": "CAT;40\nDOG;60\n",
		"s2.dict": "CAT;70\nBIRD;50\n",
	}, "s1.dict", "s2.dict")

	rep := f.build(t)

	assertEntries(t, f.entries(t), []lexicon.Entry{
		{Word: "CAT", Score: 70},
		{Word: "DOG", Score: 60},
		{Word: "BIRD", Score: 50},
	})

	if got := rep.Sources[0].Merge; got != (merge.Counters{NewWords: 2}) {
		t.Errorf("s1 counters = %+v", got)
	}
	if got := rep.Sources[1].Merge; got != (merge.Counters{NewWords: 1, UpgradedScores: 1}) {
		t.Errorf("s2 counters = %+v", got)
	}
	if rep.Stats.TotalWords != 3 {
		t.Errorf("TotalWords = %d, want 3", rep.Stats.TotalWords)
	}
	if rep.RunID == "" {
		t.Error("expected a run id")
	}
}

func TestNormalizationWindow(t *testing.T) {
	tests := []struct {
		maxLen int
		want   []lexicon.Entry
	}{
		{6, []lexicon.Entry{{Word: "OHARE", Score: 80}}},
		{5, []lexicon.Entry{{Word: "OHARE", Score: 80}}},
		{4, nil},
	}
	for _, tt := range tests {
		f := newFixture(t, map[string]string{"s.dict": "O'Hare;80\n"}, "s.dict")
		f.cfg.MaxLen = tt.maxLen
		f.build(t)
		assertEntries(t, f.entries(t), tt.want)
	}
}

func TestCommentsAndBlanks(t *testing.T) {
	f := newFixture(t, map[string]string{"s.dict": "# header\n\nAPPLE;50\n"}, "s.dict")
	rep := f.build(t)

	assertEntries(t, f.entries(t), []lexicon.Entry{{Word: "APPLE", Score: 50}})
	read := rep.Sources[0].Read
	if read.Parsed != 1 || read.Skipped != 0 {
		t.Errorf("parsed=%d skipped=%d, want 1 and 0", read.Parsed, read.Skipped)
	}
}

func TestHeuristicSingleWord(t *testing.T) {
	f := newFixture(t, map[string]string{"common.txt": "the\n"}, "common.txt")
	unscored(f, "common.txt")
	f.build(t)

	assertEntries(t, f.entries(t), []lexicon.Entry{{Word: "THE", Score: 100}})
}

func TestDuplicateLinesOrderIndependent(t *testing.T) {
	for _, body := range []string{"FOO;30\nFOO;80\n", "FOO;80\nFOO;30\n"} {
		f := newFixture(t, map[string]string{"s.dict": body}, "s.dict")
		rep := f.build(t)
		assertEntries(t, f.entries(t), []lexicon.Entry{{Word: "FOO", Score: 80}})
		if rep.Sources[0].Read.Duplicates != 1 {
			t.Errorf("Duplicates = %d, want 1", rep.Sources[0].Read.Duplicates)
		}
	}
}

func TestQWithoutURanksLower(t *testing.T) {
	f := newFixture(t, map[string]string{"common.txt": "QI\nAX\n"}, "common.txt")
	unscored(f, "common.txt")
	f.build(t)

	scores := map[string]int{}
	for _, e := range f.entries(t) {
		scores[e.Word] = e.Score
	}
	qi, ax := scores["QI"], scores["AX"]
	if qi < lexicon.MinScore || ax > lexicon.MaxScore {
		t.Fatalf("scores out of range: QI=%d AX=%d", qi, ax)
	}
	if qi >= ax {
		t.Errorf("QI=%d should rank below AX=%d", qi, ax)
	}
}

func TestBuildIdempotent(t *testing.T) {
	f := newFixture(t, map[string]string{
		"s1.dict": "CAT;40\nDOG;60\nzebra;12\n",
		"s2.dict": "CAT;70\nBIRD;50\nbad line\n",
	}, "s1.dict", "s2.dict")

	read := func() []string {
		data, err := os.ReadFile(f.output)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		var lines []string
		for _, l := range strings.Split(string(data), "\n") {
			if !strings.HasPrefix(l, dict.GeneratedPrefix) {
				lines = append(lines, l)
			}
		}
		return lines
	}

	f.build(t)
	first := read()

	b := New(Options{Config: f.cfg, Now: func() time.Time { return fixedNow.AddDate(0, 0, 3) }})
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("second Build: %v", err)
	}
	second := read()

	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Errorf("rebuild changed output:\n%v\n%v", first, second)
	}
}

func TestSourceOrderCommutative(t *testing.T) {
	files := map[string]string{
		"a.dict": "CAT;40\nDOG;60\nEMU;5\n",
		"b.dict": "CAT;70\nBIRD;50\nEMU;5\n",
		"c.dict": "DOG;65\nHERON;90\n",
	}
	orders := [][]string{
		{"a.dict", "b.dict", "c.dict"},
		{"c.dict", "b.dict", "a.dict"},
		{"b.dict", "a.dict", "c.dict"},
	}

	var want []lexicon.Entry
	for i, order := range orders {
		f := newFixture(t, files, order...)
		f.build(t)
		got := f.entries(t)
		if i == 0 {
			want = got
			continue
		}
		assertEntries(t, got, want)
	}
}

func TestMissingSourceIsNotFatal(t *testing.T) {
	f := newFixture(t, map[string]string{"s1.dict": "CAT;40\n"}, "s1.dict", "gone.dict")
	rep := f.build(t)

	if rep.Sources[1].Status != ingest.StatusNotFound {
		t.Errorf("status = %q, want %q", rep.Sources[1].Status, ingest.StatusNotFound)
	}
	assertEntries(t, f.entries(t), []lexicon.Entry{{Word: "CAT", Score: 40}})
}

func TestFailedBuildKeepsPreviousOutput(t *testing.T) {
	f := newFixture(t, map[string]string{"s.dict": "CAT;40\n"}, "s.dict")
	f.build(t)
	before, err := os.ReadFile(f.output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Options{Config: f.cfg}).Build(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Build error = %v, want context.Canceled", err)
	}

	after, err := os.ReadFile(f.output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("canceled build modified the output file")
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(f.output), ".*tmp*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestMissingOutputDirectory(t *testing.T) {
	f := newFixture(t, map[string]string{"s.dict": "CAT;40\n"}, "s.dict")
	f.cfg.Output = filepath.Join(t.TempDir(), "nope", "master.dict")

	_, err := New(Options{Config: f.cfg}).Build(context.Background())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestMissingSourceDirectory(t *testing.T) {
	f := newFixture(t, nil, "s.dict")
	f.cfg.SourceDir = filepath.Join(f.srcDir, "missing")

	_, err := New(Options{Config: f.cfg}).Build(context.Background())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if _, statErr := os.Stat(f.output); !os.IsNotExist(statErr) {
		t.Error("no output should be written when the source directory is missing")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	files := map[string]string{
		"a.dict":     "CAT;40\nDOG;60\n",
		"b.dict":     "CAT;70\nBIRD;50\n",
		"common.txt": "the\nand\nquiz\n",
	}
	order := []string{"a.dict", "b.dict", "common.txt"}

	serial := newFixture(t, files, order...)
	unscored(serial, "common.txt")
	serialRep := serial.build(t)

	parallel := newFixture(t, files, order...)
	unscored(parallel, "common.txt")
	parallel.cfg.Workers = 3
	parallelRep := parallel.build(t)

	assertEntries(t, parallel.entries(t), serial.entries(t))
	for i := range serialRep.Sources {
		if serialRep.Sources[i].Merge != parallelRep.Sources[i].Merge {
			t.Errorf("source %d counters differ: %+v vs %+v", i, serialRep.Sources[i].Merge, parallelRep.Sources[i].Merge)
		}
	}
}

func TestBuildArchivesToSQLite(t *testing.T) {
	f := newFixture(t, map[string]string{
		"s1.dict": "CAT;40\nDOG;60\n",
		"s2.dict": "CAT;70\nBIRD;50\n",
	}, "s1.dict", "s2.dict")
	dbPath := filepath.Join(t.TempDir(), "builds.db")

	rep, err := New(Options{Config: f.cfg, SQLitePath: dbPath, Now: func() time.Time { return fixedNow }}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	words, err := st.Words(ctx, rep.RunID)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	assertEntries(t, words, f.entries(t))

	stats, err := st.SourceStats(ctx, rep.RunID)
	if err != nil {
		t.Fatalf("SourceStats: %v", err)
	}
	if len(stats) != 2 || stats[1].Merge.UpgradedScores != 1 {
		t.Errorf("unexpected archived stats: %+v", stats)
	}
}

func TestReportRenders(t *testing.T) {
	f := newFixture(t, map[string]string{"s.dict": "CAT;90\n"}, "s.dict")
	rep := f.build(t)

	var buf bytes.Buffer
	if err := report.Render(&buf, *rep); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "3 letters: CAT(90)") {
		t.Errorf("report missing sample:\n%s", buf.String())
	}
}
