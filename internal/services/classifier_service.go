package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrModelUnavailable = errors.New("classification model not loaded")

// genreLabels is the fixed label set of the pretrained classifier, indexed by
// label id. The model only ever emits these 19 classes.
var genreLabels = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "History", "Horror", "Music", "Mystery",
	"Romance", "Science Fiction", "TV Movie", "Thriller", "War", "Western",
}

// fallbackGenre is used when the model emits a label outside the known set.
const fallbackGenre = "movie"

// GenreClassifier maps free-text user input to one of the 19 genre labels.
type GenreClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

type classifierService struct {
	apiURL    string
	apiToken  string
	client    *http.Client
	available bool
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewClassifierService wires the hosted inference endpoint serving the
// pretrained genre model. The constructor issues a warm-up request; if it
// fails the service stays in an unavailable state for the process lifetime
// and every Classify call returns ErrModelUnavailable without attempting
// inference.
func NewClassifierService(apiURL, apiToken string) GenreClassifier {
	s := &classifierService{
		apiURL:   apiURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 30 * time.Second},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.infer(ctx, "warm up"); err != nil {
		log.Printf("⚠️ Genre model warm-up failed, cinebot disabled: %v", err)
		return s
	}

	s.available = true
	log.Println("✅ Genre classification model ready")
	return s
}

func (s *classifierService) Classify(ctx context.Context, text string) (string, error) {
	if !s.available {
		return "", ErrModelUnavailable
	}

	scores, err := s.infer(ctx, text)
	if err != nil {
		return "", err
	}
	return genreForScores(scores), nil
}

func (s *classifierService) infer(ctx context.Context, text string) ([]labelScore, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	// The endpoint returns one score list per input.
	var batches [][]labelScore
	if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
		return nil, fmt.Errorf("malformed inference response: %w", err)
	}
	if len(batches) == 0 || len(batches[0]) == 0 {
		return nil, errors.New("empty inference response")
	}
	return batches[0], nil
}

// genreForScores takes the single highest-scoring label (no thresholding, no
// multi-label handling) and maps it back to its genre string. Ties resolve to
// the first occurrence, so classification is deterministic for fixed scores.
func genreForScores(scores []labelScore) string {
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return genreForLabel(best.Label)
}

// genreForLabel resolves either a "LABEL_<id>" name or a literal genre name.
func genreForLabel(label string) string {
	if id, ok := strings.CutPrefix(label, "LABEL_"); ok {
		n, err := strconv.Atoi(id)
		if err != nil || n < 0 || n >= len(genreLabels) {
			return fallbackGenre
		}
		return genreLabels[n]
	}
	for _, g := range genreLabels {
		if g == label {
			return g
		}
	}
	return fallbackGenre
}
