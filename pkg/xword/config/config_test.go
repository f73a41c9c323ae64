package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/xword/pkg/xword/internalerr"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.MinLen != 2 || cfg.MaxLen != 5 {
		t.Errorf("default length window = %d-%d, want 2-5", cfg.MinLen, cfg.MaxLen)
	}
	if len(cfg.Sources) == 0 {
		t.Error("default registry should not be empty")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "registry.yaml")

	content := `source_dir: lists
output: out/master.dict
max_len: 6
sources:
  - file: s1.dict
    priority: 1
    description: First
  - file: common.txt
    priority: 2
    description: Heuristic
    scored: false
  - file: names.html
    priority: 3
    description: Names page
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.SourceDir != "lists" {
		t.Errorf("SourceDir = %q, want %q", cfg.SourceDir, "lists")
	}
	if cfg.MinLen != 2 {
		t.Errorf("MinLen = %d, want default 2", cfg.MinLen)
	}
	if cfg.MaxLen != 6 {
		t.Errorf("MaxLen = %d, want 6", cfg.MaxLen)
	}
	if cfg.Regenerate != DefaultRegenerate {
		t.Errorf("Regenerate = %q, want default", cfg.Regenerate)
	}
	if len(cfg.Sources) != 3 {
		t.Fatalf("Sources has %d entries, want 3 (file replaces defaults)", len(cfg.Sources))
	}

	if !cfg.Sources[0].IsScored() {
		t.Error("s1.dict should default to scored")
	}
	if cfg.Sources[1].IsScored() {
		t.Error("common.txt should be unscored")
	}
	if got := cfg.Sources[2].SourceFormat(); got != FormatHTML {
		t.Errorf("names.html format = %q, want %q", got, FormatHTML)
	}
	if got := cfg.Sources[0].SourceFormat(); got != FormatDict {
		t.Errorf("s1.dict format = %q, want %q", got, FormatDict)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/registry.yaml"); err == nil {
		t.Error("LoadFile should fail for a missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sources: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SourceDir: "lists",
			Output:    "out.dict",
			MinLen:    2,
			MaxLen:    5,
			Sources:   []Source{{File: "a.dict"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min_len zero", func(c *Config) { c.MinLen = 0 }},
		{"max below min", func(c *Config) { c.MaxLen = 1 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"no source dir", func(c *Config) { c.SourceDir = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"no sources", func(c *Config) { c.Sources = nil }},
		{"empty file", func(c *Config) { c.Sources = []Source{{File: " "}} }},
		{"nested path", func(c *Config) { c.Sources = []Source{{File: "sub/a.dict"}} }},
		{"duplicate", func(c *Config) { c.Sources = []Source{{File: "a.dict"}, {File: "a.dict"}} }},
		{"unknown format", func(c *Config) { c.Sources = []Source{{File: "a.dict", Format: "csv"}} }},
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("baseline config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSourceFiles(t *testing.T) {
	cfg := Config{Sources: []Source{{File: "b.dict"}, {File: "a.dict"}}}
	files := cfg.SourceFiles()
	if len(files) != 2 || files[0] != "b.dict" || files[1] != "a.dict" {
		t.Errorf("SourceFiles() = %v, want registry order [b.dict a.dict]", files)
	}
}
