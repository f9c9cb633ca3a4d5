package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

// discoverySeeds is the topic vocabulary the diversity queue draws from. The
// upstream search API only answers keyword queries, so variety comes from
// querying several unrelated topics per batch.
var discoverySeeds = []string{
	"star", "love", "matrix", "dark", "king", "war", "life", "space", "girl",
	"man", "boy", "night", "black", "dream", "time", "hero", "city", "world",
	"adventure", "journey", "quest", "legend", "myth", "future", "past",
	"ring", "ocean", "fire", "ice", "shadow", "light", "storm", "dragon",
	"wizard", "knight", "magic", "mystery", "crime", "action", "thriller",
	"romance", "comedy", "drama", "horror", "sci-fi", "western", "fantasy",
	"music", "sport", "history",
}

var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "in": {}, "of": {},
	"to": {}, "for": {}, "is": {}, "it": {}, "be": {},
}

const (
	queueLimit   = 25
	dedupeWindow = 3
	maxOverlap   = 1
)

// DiscoveryService assembles the diversity browsing queue.
type DiscoveryService interface {
	BuildQueue(ctx context.Context, excluded map[string]struct{}) ([]models.OmdbSearchResult, []string, error)
}

type discoveryService struct {
	omdb OMDBService

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDiscoveryService builds a discovery service. A nil rng gets a
// time-seeded source; tests pass a fixed seed.
func NewDiscoveryService(omdb OMDBService, rng *rand.Rand) DiscoveryService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &discoveryService{omdb: omdb, rng: rng}
}

// BuildQueue picks 4-6 random seed topics, searches each, filters out
// posterless and already-seen titles, drops near-duplicate titles, shuffles
// and caps the queue. Seeds whose search fails are skipped silently; all
// seeds coming back empty yields an empty queue, not an error.
func (s *discoveryService) BuildQueue(ctx context.Context, excluded map[string]struct{}) ([]models.OmdbSearchResult, []string, error) {
	seeds := s.pickSeeds()

	var all []models.OmdbSearchResult
	for _, seed := range seeds {
		results, err := s.omdb.Search(ctx, seed)
		if err != nil {
			continue
		}
		for i := range results {
			results[i].Seed = seed
		}
		all = append(all, results...)
	}

	filtered := all[:0]
	for _, m := range all {
		if m.Poster == "" || m.Poster == "N/A" {
			continue
		}
		if _, seen := excluded[m.ImdbID]; seen {
			continue
		}
		filtered = append(filtered, m)
	}

	queue := dedupeByTitle(filtered)

	s.mu.Lock()
	s.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	s.mu.Unlock()

	if len(queue) > queueLimit {
		queue = queue[:queueLimit]
	}
	return queue, seeds, nil
}

func (s *discoveryService) pickSeeds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 4 + s.rng.Intn(3)
	if n > len(discoverySeeds) {
		n = len(discoverySeeds)
	}

	perm := s.rng.Perm(len(discoverySeeds))
	seeds := make([]string, n)
	for i := 0; i < n; i++ {
		seeds[i] = discoverySeeds[perm[i]]
	}
	return seeds
}

// dedupeByTitle walks the candidates in order and drops any whose significant
// title words share more than one word with one of the last 3 accepted
// entries. Keeps sequels and near-identical titles from clustering.
func dedupeByTitle(candidates []models.OmdbSearchResult) []models.OmdbSearchResult {
	accepted := make([]models.OmdbSearchResult, 0, len(candidates))
	acceptedWords := make([]map[string]struct{}, 0, len(candidates))

	for _, m := range candidates {
		words := significantTitleWords(m.Title)

		overlapping := false
		start := len(accepted) - dedupeWindow
		if start < 0 {
			start = 0
		}
		for i := start; i < len(accepted); i++ {
			if wordOverlap(words, acceptedWords[i]) > maxOverlap {
				overlapping = true
				break
			}
		}

		if !overlapping {
			accepted = append(accepted, m)
			acceptedWords = append(acceptedWords, words)
		}
	}
	return accepted
}

// significantTitleWords lowercases the title and keeps words longer than two
// characters that are not stop words.
func significantTitleWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := titleStopWords[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

func wordOverlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for w := range a {
		if _, ok := b[w]; ok {
			count++
		}
	}
	return count
}
