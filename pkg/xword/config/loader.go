package config

import (
	"fmt"
)

// Loader assembles a Config from the built-in defaults, an optional registry
// file and command-line overrides. Zero-valued overrides are ignored.
type Loader struct {
	RegistryPath string

	SourceDir string
	Output    string
	MinLen    int
	MaxLen    int
	Workers   int
}

// Load builds and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.RegistryPath != "" {
		loaded, err := LoadFile(l.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		cfg = *loaded
	}

	if l.SourceDir != "" {
		cfg.SourceDir = l.SourceDir
	}
	if l.Output != "" {
		cfg.Output = l.Output
	}
	if l.MinLen != 0 {
		cfg.MinLen = l.MinLen
	}
	if l.MaxLen != 0 {
		cfg.MaxLen = l.MaxLen
	}
	if l.Workers != 0 {
		cfg.Workers = l.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
