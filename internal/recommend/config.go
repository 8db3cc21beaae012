// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// Schema error policies.
const (
	// OnSchemaErrorAbort fails the whole build on the first malformed record.
	OnSchemaErrorAbort = "abort"

	// OnSchemaErrorSkip drops malformed records with a warning and builds
	// from the remainder.
	OnSchemaErrorSkip = "skip"
)

// Matrix modes.
const (
	// MatrixEager precomputes the full N x N similarity matrix at build time.
	MatrixEager = "eager"

	// MatrixLazy computes similarity rows per query from the stored vectors.
	// Same results, no quadratic memory; suited to large corpora.
	MatrixLazy = "lazy"
)

// Config controls pipeline behavior. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// DefaultK is the number of recommendations returned when the caller
	// does not specify one.
	DefaultK int `koanf:"default_k"`

	// MaxK caps the per-request k. Zero means no cap beyond corpus size.
	MaxK int `koanf:"max_k"`

	// CastLimit is how many top-billed cast members contribute features.
	CastLimit int `koanf:"cast_limit"`

	// CaseSensitiveTitles controls title lookup matching.
	CaseSensitiveTitles bool `koanf:"case_sensitive_titles"`

	// OnSchemaError selects the build policy for malformed records:
	// "abort" (default) or "skip".
	OnSchemaError string `koanf:"on_schema_error"`

	// Matrix selects similarity evaluation: "eager" (default) or "lazy".
	Matrix string `koanf:"matrix"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		DefaultK:      10,
		MaxK:          100,
		CastLimit:     3,
		OnSchemaError: OnSchemaErrorAbort,
		Matrix:        MatrixEager,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("recommend: default_k must be >= 1, got %d", c.DefaultK)
	}
	if c.MaxK < 0 {
		return fmt.Errorf("recommend: max_k must be >= 0, got %d", c.MaxK)
	}
	if c.MaxK > 0 && c.DefaultK > c.MaxK {
		return fmt.Errorf("recommend: default_k %d exceeds max_k %d", c.DefaultK, c.MaxK)
	}
	if c.CastLimit < 0 {
		return fmt.Errorf("recommend: cast_limit must be >= 0, got %d", c.CastLimit)
	}
	switch c.OnSchemaError {
	case OnSchemaErrorAbort, OnSchemaErrorSkip:
	default:
		return fmt.Errorf("recommend: on_schema_error must be %q or %q, got %q",
			OnSchemaErrorAbort, OnSchemaErrorSkip, c.OnSchemaError)
	}
	switch c.Matrix {
	case MatrixEager, MatrixLazy:
	default:
		return fmt.Errorf("recommend: matrix must be %q or %q, got %q",
			MatrixEager, MatrixLazy, c.Matrix)
	}
	return nil
}

// clampK resolves a caller-supplied k against the configured defaults and
// limits. k <= 0 selects DefaultK.
func (c *Config) clampK(k int) int {
	if k <= 0 {
		k = c.DefaultK
	}
	if c.MaxK > 0 && k > c.MaxK {
		k = c.MaxK
	}
	return k
}
