package internalerr

import "errors"

// Sentinel errors for the build pipeline
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrSourceNotFound = errors.New("source not found")
	ErrInvalidLine    = errors.New("invalid line")
	ErrInvariant      = errors.New("internal invariant violation")
	ErrOutputWrite    = errors.New("output write failed")
)
