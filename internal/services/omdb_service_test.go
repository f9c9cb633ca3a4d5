package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetByIDFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt0133093" {
			t.Errorf("i param = %q, want tt0133093", got)
		}
		if r.URL.Query().Get("apikey") == "" {
			t.Error("apikey param missing")
		}
		w.Write([]byte(`{"Response":"True","Title":"The Matrix","Year":"1999","Genre":"Action, Sci-Fi","imdbID":"tt0133093","imdbRating":"8.7"}`))
	}))
	defer srv.Close()

	svc := NewOMDBService("test-key", srv.URL)

	movie, err := svc.GetByID(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if movie.Title != "The Matrix" {
		t.Errorf("Title = %q, want The Matrix", movie.Title)
	}
	if movie.ImdbRating != "8.7" {
		t.Errorf("ImdbRating = %q, want 8.7", movie.ImdbRating)
	}
}

func TestGetByTitleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	svc := NewOMDBService("test-key", srv.URL)

	_, err := svc.GetByTitle(context.Background(), "no such movie")
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("GetByTitle() error = %v, want ErrMovieNotFound", err)
	}
}

func TestLookupProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewOMDBService("test-key", srv.URL)

	_, err := svc.GetByID(context.Background(), "tt0000001")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("GetByID() error = %v, want ErrProviderUnavailable", err)
	}
}

func TestSearchReturnsBriefResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "space" {
			t.Errorf("s param = %q, want space", got)
		}
		if got := r.URL.Query().Get("type"); got != "movie" {
			t.Errorf("type param = %q, want movie", got)
		}
		w.Write([]byte(`{"Response":"True","Search":[
			{"Title":"Space Jam","Year":"1996","imdbID":"tt0117705","Type":"movie","Poster":"https://x/p.jpg"},
			{"Title":"Office Space","Year":"1999","imdbID":"tt0151804","Type":"movie","Poster":"N/A"}
		],"totalResults":"2"}`))
	}))
	defer srv.Close()

	svc := NewOMDBService("test-key", srv.URL)

	results, err := svc.Search(context.Background(), "space")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ImdbID != "tt0117705" {
		t.Errorf("first result id = %q, want tt0117705", results[0].ImdbID)
	}
}

func TestSearchNoHitsIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	svc := NewOMDBService("test-key", srv.URL)

	results, err := svc.Search(context.Background(), "zzzzzz")
	if err != nil {
		t.Fatalf("Search() error = %v, want nil", err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("got %v, want empty slice", results)
	}
}
