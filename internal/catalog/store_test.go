// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func storeTestMovies() []recommend.Movie {
	return []recommend.Movie{
		{ID: 300, Title: "Paris in Spring", Genres: []string{"Romance"}, Keywords: []string{}, Cast: []string{"Cleo Moreau"}, Director: "Luc Besson"},
		{ID: 100, Title: "Star Raiders", Genres: []string{"Action"}, Keywords: []string{"space war"}, Cast: []string{"Ann Lee"}, Director: "Pat Kim"},
	}
}

func TestStorePutAllAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutAll(storeTestMovies()); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	m, err := s.Get(100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.Title != "Star Raiders" || m.Director != "Pat Kim" {
		t.Errorf("Get(100) = %+v", m)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get(42); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestStoreMoviesOrderedByID(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutAll(storeTestMovies()); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	movies, err := s.Movies()
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("len = %d, want 2", len(movies))
	}
	// Inserted 300 then 100; iteration is ascending ID.
	if movies[0].ID != 100 || movies[1].ID != 300 {
		t.Errorf("order = [%d %d], want [100 300]", movies[0].ID, movies[1].ID)
	}
	if !reflect.DeepEqual(movies[0].Keywords, []string{"space war"}) {
		t.Errorf("round-tripped keywords = %v", movies[0].Keywords)
	}
}

func TestStorePutAllReplaces(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutAll(storeTestMovies()); err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	updated := []recommend.Movie{{ID: 100, Title: "Star Raiders: Redux"}}
	if err := s.PutAll(updated); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	m, err := s.Get(100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.Title != "Star Raiders: Redux" {
		t.Errorf("title = %q, want replaced record", m.Title)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestStoreCountEmpty(t *testing.T) {
	s := newTestStore(t)

	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
