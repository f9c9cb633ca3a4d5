package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nulllpunkt/Cinematch/internal/config"
	"github.com/nulllpunkt/Cinematch/internal/models"
	"github.com/nulllpunkt/Cinematch/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		Env:       "test",
		SecretKey: "test-secret",
	}
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Movie{}, &models.UserLike{}, &models.UserDislike{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stubOMDB is a canned catalog proxy for handler tests.
type stubOMDB struct {
	byID          map[string]*models.OmdbMovie
	searchResults []models.OmdbSearchResult
	searchErr     error
}

func (s *stubOMDB) GetByID(_ context.Context, imdbID string) (*models.OmdbMovie, error) {
	if movie, ok := s.byID[imdbID]; ok {
		return movie, nil
	}
	return nil, services.ErrMovieNotFound
}

func (s *stubOMDB) GetByTitle(_ context.Context, title string) (*models.OmdbMovie, error) {
	for _, movie := range s.byID {
		if movie.Title == title {
			return movie, nil
		}
	}
	return nil, services.ErrMovieNotFound
}

func (s *stubOMDB) Search(_ context.Context, query string) ([]models.OmdbSearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchResults, nil
}

// stubClassifier returns a fixed genre or error.
type stubClassifier struct {
	genre string
	err   error
}

func (s *stubClassifier) Classify(_ context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.genre, nil
}
