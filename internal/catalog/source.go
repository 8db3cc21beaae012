// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "github.com/tomtom215/reelmatch/internal/recommend"

// CSVSource supplies movies straight from the TMDB CSV pair. Each call
// re-parses the files, so edits on disk are picked up by the next rebuild.
type CSVSource struct {
	MoviesPath  string
	CreditsPath string
}

// Movies loads and merges the CSV files.
func (s CSVSource) Movies() ([]recommend.Movie, error) {
	return LoadCSV(s.MoviesPath, s.CreditsPath)
}
