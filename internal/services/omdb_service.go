package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrProviderUnavailable = errors.New("metadata provider unavailable")
)

// OMDBService is the catalog proxy over the external metadata provider. No
// caching, retries, or rate limiting: provider failures surface directly.
type OMDBService interface {
	GetByID(ctx context.Context, imdbID string) (*models.OmdbMovie, error)
	GetByTitle(ctx context.Context, title string) (*models.OmdbMovie, error)
	Search(ctx context.Context, query string) ([]models.OmdbSearchResult, error)
}

type omdbService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOMDBService(apiKey, baseURL string) OMDBService {
	return &omdbService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *omdbService) GetByID(ctx context.Context, imdbID string) (*models.OmdbMovie, error) {
	return s.lookup(ctx, url.Values{"i": {imdbID}})
}

func (s *omdbService) GetByTitle(ctx context.Context, title string) (*models.OmdbMovie, error) {
	return s.lookup(ctx, url.Values{"t": {title}})
}

func (s *omdbService) lookup(ctx context.Context, params url.Values) (*models.OmdbMovie, error) {
	var movie models.OmdbMovie
	if err := s.get(ctx, params, &movie); err != nil {
		return nil, err
	}

	// OMDb signals a miss inside a 200 body.
	if movie.Response != "True" {
		if movie.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, movie.Error)
		}
		return nil, ErrMovieNotFound
	}
	return &movie, nil
}

func (s *omdbService) Search(ctx context.Context, query string) ([]models.OmdbSearchResult, error) {
	params := url.Values{"s": {query}, "type": {"movie"}}

	var resp models.OmdbSearchResponse
	if err := s.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	// "Movie not found!" is an empty result set, not a failure.
	if resp.Response != "True" {
		return []models.OmdbSearchResult{}, nil
	}
	return resp.Search, nil
}

func (s *omdbService) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return nil
}
