// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus is returned by Build when the input contains zero movies.
	ErrEmptyCorpus = errors.New("recommend: empty corpus")

	// ErrIndexOutOfRange is returned by neighbor queries for a corpus index
	// outside [0, N). It indicates a caller bug, not bad user input.
	ErrIndexOutOfRange = errors.New("recommend: corpus index out of range")

	// ErrIndexNotReady is returned by query operations before the first
	// successful build has completed.
	ErrIndexNotReady = errors.New("recommend: index not ready")

	// ErrRebuildInProgress is returned when a rebuild is requested while
	// another rebuild is still running.
	ErrRebuildInProgress = errors.New("recommend: rebuild already in progress")
)

// SchemaError reports a malformed input record encountered during a build.
// Under the default abort policy a single SchemaError fails the whole build;
// under the skip policy the offending record is dropped with a warning.
type SchemaError struct {
	// Row is the zero-based position of the record in the input.
	Row int

	// Field names the offending field.
	Field string

	// Reason describes what was wrong with it.
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("recommend: schema error at row %d, field %q: %s", e.Row, e.Field, e.Reason)
}

// TitleNotFoundError is returned by Recommend when the queried title is not
// in the corpus. It is recoverable per call and does not affect the index.
type TitleNotFoundError struct {
	Title string
}

func (e *TitleNotFoundError) Error() string {
	return fmt.Sprintf("recommend: title not found: %q", e.Title)
}
