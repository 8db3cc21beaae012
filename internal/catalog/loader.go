// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog loads and persists the movie catalog consumed by the
// recommendation pipeline. The CSV loader understands the TMDB 5000 dataset
// layout: movies.csv carries id, title and JSON-encoded genre/keyword name
// lists; credits.csv carries JSON-encoded cast and crew lists keyed by
// movie_id. Nested {"name": ...} objects are flattened to plain strings at
// this boundary so the pipeline only ever sees flat movie records.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// namedEntity is the common TMDB JSON cell shape: a list of objects that
// each carry at least a "name".
type namedEntity struct {
	Name string `json:"name"`
}

// crewEntity adds the job field needed to find the director.
type crewEntity struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// credit is the per-movie payload parsed out of credits.csv.
type credit struct {
	cast     []string
	director string
}

// LoadCSV reads movies.csv and credits.csv and returns merged movie records
// in movies.csv row order. Rows with an empty title or an unparseable id are
// dropped with a warning; malformed JSON cells degrade to empty lists, the
// same tolerance the dataset's upstream consumers apply. Movies without a
// credits row get empty cast and director.
func LoadCSV(moviesPath, creditsPath string) ([]recommend.Movie, error) {
	credits, err := loadCredits(creditsPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(moviesPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open movies: %w", err)
	}
	defer f.Close()

	logger := logging.WithComponent("catalog")

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read movies header: %w", err)
	}
	cols, err := columnIndex(header, "id", "title", "genres", "keywords")
	if err != nil {
		return nil, fmt.Errorf("catalog: movies.csv: %w", err)
	}

	var movies []recommend.Movie
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read movies row %d: %w", row, err)
		}
		if len(record) < len(header) {
			logger.Warn().Int("row", row).Int("fields", len(record)).Msg("dropping short row")
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[cols["id"]]))
		if err != nil {
			logger.Warn().Int("row", row).Str("id", record[cols["id"]]).Msg("dropping row with bad movie id")
			continue
		}
		title := strings.TrimSpace(record[cols["title"]])
		if title == "" {
			logger.Warn().Int("row", row).Int("movie_id", id).Msg("dropping row with empty title")
			continue
		}

		m := recommend.Movie{
			ID:       id,
			Title:    title,
			Genres:   parseNameList(record[cols["genres"]]),
			Keywords: parseNameList(record[cols["keywords"]]),
			Cast:     []string{},
		}
		if c, ok := credits[id]; ok {
			m.Cast = c.cast
			m.Director = c.director
		}
		movies = append(movies, m)
	}

	logger.Info().Int("movies", len(movies)).Int("credits", len(credits)).Msg("catalog loaded")
	return movies, nil
}

// loadCredits parses credits.csv into a movie_id keyed map.
func loadCredits(path string) (map[int]credit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open credits: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read credits header: %w", err)
	}
	cols, err := columnIndex(header, "movie_id", "cast", "crew")
	if err != nil {
		return nil, fmt.Errorf("catalog: credits.csv: %w", err)
	}

	credits := make(map[int]credit)
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read credits row %d: %w", row, err)
		}
		if len(record) < len(header) {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[cols["movie_id"]]))
		if err != nil {
			continue
		}
		credits[id] = credit{
			cast:     parseNameList(record[cols["cast"]]),
			director: parseDirector(record[cols["crew"]]),
		}
	}
	return credits, nil
}

// columnIndex resolves required column names against a CSV header.
func columnIndex(header []string, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for i, h := range header {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out[name] = i
	}
	return out, nil
}

// parseNameList flattens a JSON cell of [{"name": ...}, ...] objects into a
// string slice. Malformed cells yield an empty list, never an error.
func parseNameList(cell string) []string {
	var entities []namedEntity
	if err := json.Unmarshal([]byte(cell), &entities); err != nil {
		return []string{}
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}

// parseDirector extracts the first crew member whose job is Director.
// Malformed cells or crews without a director yield the empty string.
func parseDirector(cell string) string {
	var crew []crewEntity
	if err := json.Unmarshal([]byte(cell), &crew); err != nil {
		return ""
	}
	for _, member := range crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return ""
}
