package repository

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

var ErrMovieNotFound = errors.New("movie not found")

type MovieRepository interface {
	CreateMovie(movie *models.Movie) error
	GetMovieByImdbID(imdbID string) (*models.Movie, error)
	LikeMovie(userID uint, imdbID string) (bool, error)
	DislikeMovie(userID uint, imdbID string) (bool, error)
	UnlikeMovie(userID uint, imdbID string) (bool, error)
	GetWatchlist(userID uint) ([]models.Movie, error)
	GetLikedGenreCounts(userID uint) ([]models.GenreCount, int, error)
	GetExcludedIDs(userID uint) (map[string]struct{}, error)
}

type movieRepo struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepo{db: db}
}

func (r *movieRepo) CreateMovie(movie *models.Movie) error {
	return r.db.Create(movie).Error
}

func (r *movieRepo) GetMovieByImdbID(imdbID string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.First(&movie, "imdb_id = ?", imdbID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // not cached yet
		}
		return nil, err
	}
	return &movie, nil
}

// LikeMovie records a like edge. The insert is an upsert on the composite
// (user_id, movie_imdb_id) key so concurrent duplicate requests collapse into
// one row instead of racing a check-then-append. Returns false when the edge
// already existed.
func (r *movieRepo) LikeMovie(userID uint, imdbID string) (bool, error) {
	return r.addEdge(&models.UserLike{UserID: userID, MovieImdbID: imdbID})
}

// DislikeMovie records a dislike edge. Dislikes have no removal operation.
// Nothing prevents a movie from being in both sets for the same user.
func (r *movieRepo) DislikeMovie(userID uint, imdbID string) (bool, error) {
	return r.addEdge(&models.UserDislike{UserID: userID, MovieImdbID: imdbID})
}

func (r *movieRepo) addEdge(edge interface{}) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_imdb_id"}},
		DoNothing: true,
	}).Create(edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *movieRepo) UnlikeMovie(userID uint, imdbID string) (bool, error) {
	res := r.db.Where("user_id = ? AND movie_imdb_id = ?", userID, imdbID).
		Delete(&models.UserLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *movieRepo) GetWatchlist(userID uint) ([]models.Movie, error) {
	var likes []models.UserLike
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}

	movies := make([]models.Movie, 0, len(likes))
	for _, like := range likes {
		movies = append(movies, like.Movie)
	}
	return movies, nil
}

// GetLikedGenreCounts builds the favorite-genre histogram: every
// comma-separated genre token of every liked movie counts once, sorted by
// count descending. Also returns the number of liked movies.
func (r *movieRepo) GetLikedGenreCounts(userID uint) ([]models.GenreCount, int, error) {
	movies, err := r.GetWatchlist(userID)
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int)
	for _, movie := range movies {
		if movie.Genre == "" {
			continue
		}
		for _, genre := range strings.Split(movie.Genre, ", ") {
			if genre != "" {
				counts[genre]++
			}
		}
	}

	result := make([]models.GenreCount, 0, len(counts))
	for genre, count := range counts {
		result = append(result, models.GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Genre < result[j].Genre
	})

	return result, len(movies), nil
}

// GetExcludedIDs returns every movie id the user has already liked or
// disliked, for filtering the discovery queue.
func (r *movieRepo) GetExcludedIDs(userID uint) (map[string]struct{}, error) {
	excluded := make(map[string]struct{})

	var likedIDs []string
	if err := r.db.Model(&models.UserLike{}).
		Where("user_id = ?", userID).
		Pluck("movie_imdb_id", &likedIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range likedIDs {
		excluded[id] = struct{}{}
	}

	var dislikedIDs []string
	if err := r.db.Model(&models.UserDislike{}).
		Where("user_id = ?", userID).
		Pluck("movie_imdb_id", &dislikedIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range dislikedIDs {
		excluded[id] = struct{}{}
	}

	return excluded, nil
}
