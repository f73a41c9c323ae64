package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/xword/pkg/xword/internalerr"
	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// Source formats
const (
	FormatDict = "dict" // WORD;SCORE lines (or bare words when unscored)
	FormatHTML = "html" // text content of an HTML page, one candidate per line
)

// Default locations used when the builder runs without arguments.
const (
	DefaultSourceDir  = "data/wordlists"
	DefaultOutput     = "data/crossword-master.dict"
	DefaultRegenerate = "go run ./cmd/xwdict"
)

// Source describes one registered word list.
// Priority is informational only: it is reported but never used to pick
// between scores.
type Source struct {
	File        string `yaml:"file"`
	Priority    int    `yaml:"priority"`
	Description string `yaml:"description"`
	Format      string `yaml:"format,omitempty"`
	Scored      *bool  `yaml:"scored,omitempty"`
}

// IsScored reports whether lines carry a ;SCORE column. Sources default to
// scored; unscored sources go through the heuristic scorer.
func (s Source) IsScored() bool {
	return s.Scored == nil || *s.Scored
}

// SourceFormat returns the explicit format, or one inferred from the file
// extension.
func (s Source) SourceFormat() string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	switch strings.ToLower(filepath.Ext(s.File)) {
	case ".html", ".htm":
		return FormatHTML
	}
	return FormatDict
}

// Config is the full build configuration: paths, length window and the
// ordered source registry.
type Config struct {
	SourceDir  string   `yaml:"source_dir"`
	Output     string   `yaml:"output"`
	MinLen     int      `yaml:"min_len"`
	MaxLen     int      `yaml:"max_len"`
	Workers    int      `yaml:"workers"`
	Regenerate string   `yaml:"regenerate"`
	Sources    []Source `yaml:"sources"`
}

// DefaultConfig returns the built-in registry and default paths.
func DefaultConfig() Config {
	return Config{
		SourceDir:  DefaultSourceDir,
		Output:     DefaultOutput,
		MinLen:     lexicon.DefaultMinLen,
		MaxLen:     lexicon.DefaultMaxLen,
		Workers:    1,
		Regenerate: DefaultRegenerate,
		Sources:    DefaultRegistry(),
	}
}

// DefaultRegistry lists the bundled word lists in merge order.
func DefaultRegistry() []Source {
	unscored := false
	return []Source{
		{File: "spreadthewordlist.dict", Priority: 1, Description: "Spread the Wordlist (curated, scored)"},
		{File: "xwordinfo.dict", Priority: 2, Description: "XWord Info community list"},
		{File: "crossfire.dict", Priority: 3, Description: "Crossfire default word list"},
		{File: "puzzle-answers.dict", Priority: 4, Description: "Answers from published daily minis"},
		{File: "names-and-places.dict", Priority: 5, Description: "Proper names and places"},
		{File: "common-english.txt", Priority: 6, Description: "Common English words (heuristic scores)", Scored: &unscored},
	}
}

// LoadFile reads a YAML registry and overlays it onto DefaultConfig.
// Fields missing from the file keep their defaults; a sources list in the
// file replaces the built-in registry.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Normalizer returns the normalizer for the configured length window.
func (c Config) Normalizer() lexicon.Normalizer {
	return lexicon.NewNormalizer(c.MinLen, c.MaxLen)
}

// SourceFiles returns the registered file names in registry order.
func (c Config) SourceFiles() []string {
	files := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		files[i] = s.File
	}
	return files
}

// Validate checks the configuration for errors that make a run impossible.
// Filesystem checks happen at run time.
func (c Config) Validate() error {
	if c.MinLen < 1 {
		return fmt.Errorf("%w: min_len %d must be at least 1", internalerr.ErrInvalidConfig, c.MinLen)
	}
	if c.MaxLen < c.MinLen {
		return fmt.Errorf("%w: max_len %d is below min_len %d", internalerr.ErrInvalidConfig, c.MaxLen, c.MinLen)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", internalerr.ErrInvalidConfig, c.Workers)
	}
	if c.SourceDir == "" {
		return fmt.Errorf("%w: source_dir is empty", internalerr.ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is empty", internalerr.ErrInvalidConfig)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: registry has no sources", internalerr.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if strings.TrimSpace(s.File) == "" {
			return fmt.Errorf("%w: source %d has no file", internalerr.ErrInvalidConfig, i+1)
		}
		if filepath.Base(s.File) != s.File {
			return fmt.Errorf("%w: source %q must be a file name inside source_dir", internalerr.ErrInvalidConfig, s.File)
		}
		if seen[s.File] {
			return fmt.Errorf("%w: source %q registered twice", internalerr.ErrInvalidConfig, s.File)
		}
		seen[s.File] = true

		switch s.SourceFormat() {
		case FormatDict, FormatHTML:
		default:
			return fmt.Errorf("%w: source %q has unknown format %q", internalerr.ErrInvalidConfig, s.File, s.Format)
		}
	}
	return nil
}
