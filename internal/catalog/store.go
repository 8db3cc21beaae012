// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Key prefix for movie records in BadgerDB.
const movieKeyPrefix = "movie:"

// ErrMovieNotFound is returned by Get for an unknown movie ID.
var ErrMovieNotFound = errors.New("catalog: movie not found")

// Store persists imported movie records in BadgerDB so the index can be
// rebuilt after a restart without re-parsing the CSVs. Movies are stored as
// JSON values keyed by zero-padded ID; iteration order is therefore
// ascending ID, which keeps corpus order stable across restarts.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a Badger-backed store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func movieKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", movieKeyPrefix, id))
}

// PutAll stores the given movies, replacing any existing records with the
// same IDs.
func (s *Store) PutAll(movies []recommend.Movie) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, m := range movies {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("catalog: marshal movie %d: %w", m.ID, err)
		}
		if err := wb.Set(movieKey(m.ID), data); err != nil {
			return fmt.Errorf("catalog: batch movie %d: %w", m.ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("catalog: flush: %w", err)
	}
	return nil
}

// Get retrieves one movie by ID.
func (s *Store) Get(id int) (recommend.Movie, error) {
	var m recommend.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(movieKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMovieNotFound
		}
		if err != nil {
			return fmt.Errorf("catalog: get movie %d: %w", id, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	return m, err
}

// Movies returns all stored movies in ascending ID order.
func (s *Store) Movies() ([]recommend.Movie, error) {
	var movies []recommend.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(movieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var m recommend.Movie
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			})
			if err != nil {
				return fmt.Errorf("catalog: decode movie: %w", err)
			}
			movies = append(movies, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Count returns the number of stored movies.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(movieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
