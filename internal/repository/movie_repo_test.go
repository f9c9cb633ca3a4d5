package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedMovie(t *testing.T, repo MovieRepository, id, title, genre string) {
	t.Helper()
	err := repo.CreateMovie(&models.Movie{
		ImdbID: id, Title: title, Year: 2000, Genre: genre,
		PosterURL: "https://x/" + id + ".jpg", ImdbRating: "7.5",
	})
	if err != nil {
		t.Fatalf("seed movie %s: %v", id, err)
	}
}

func TestLikeThenWatchlistRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)
	seedMovie(t, repo, "tt0133093", "The Matrix", "Action, Sci-Fi")

	created, err := repo.LikeMovie(user.ID, "tt0133093")
	if err != nil {
		t.Fatalf("LikeMovie() error = %v", err)
	}
	if !created {
		t.Fatal("first like should create the edge")
	}

	watchlist, err := repo.GetWatchlist(user.ID)
	if err != nil {
		t.Fatalf("GetWatchlist() error = %v", err)
	}
	if len(watchlist) != 1 || watchlist[0].ImdbID != "tt0133093" {
		t.Fatalf("watchlist = %+v, want the liked movie", watchlist)
	}

	deleted, err := repo.UnlikeMovie(user.ID, "tt0133093")
	if err != nil {
		t.Fatalf("UnlikeMovie() error = %v", err)
	}
	if !deleted {
		t.Fatal("unlike should report the edge as deleted")
	}

	watchlist, err = repo.GetWatchlist(user.ID)
	if err != nil {
		t.Fatalf("GetWatchlist() error = %v", err)
	}
	if len(watchlist) != 0 {
		t.Fatalf("watchlist after unlike = %+v, want empty", watchlist)
	}
}

func TestDuplicateLikeIsAbsorbed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)
	seedMovie(t, repo, "tt0111161", "The Shawshank Redemption", "Drama")

	if created, err := repo.LikeMovie(user.ID, "tt0111161"); err != nil || !created {
		t.Fatalf("first like: created=%v err=%v", created, err)
	}
	created, err := repo.LikeMovie(user.ID, "tt0111161")
	if err != nil {
		t.Fatalf("duplicate like error = %v", err)
	}
	if created {
		t.Fatal("duplicate like should report already-present")
	}

	var count int64
	db.Model(&models.UserLike{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("like rows = %d, want 1", count)
	}
}

func TestUnlikeUnknownMovie(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)

	deleted, err := repo.UnlikeMovie(user.ID, "tt9999999")
	if err != nil {
		t.Fatalf("UnlikeMovie() error = %v", err)
	}
	if deleted {
		t.Fatal("unliking a movie that was never liked should report false")
	}
}

func TestLikeAndDislikeAreNotMutuallyExclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)
	seedMovie(t, repo, "tt0068646", "The Godfather", "Crime, Drama")

	if _, err := repo.LikeMovie(user.ID, "tt0068646"); err != nil {
		t.Fatalf("LikeMovie() error = %v", err)
	}
	if created, err := repo.DislikeMovie(user.ID, "tt0068646"); err != nil || !created {
		t.Fatalf("DislikeMovie() after like: created=%v err=%v", created, err)
	}

	excluded, err := repo.GetExcludedIDs(user.ID)
	if err != nil {
		t.Fatalf("GetExcludedIDs() error = %v", err)
	}
	if _, ok := excluded["tt0068646"]; !ok {
		t.Fatal("movie in both sets should be excluded once")
	}
	if len(excluded) != 1 {
		t.Fatalf("excluded set = %v, want single id", excluded)
	}
}

func TestGetExcludedIDsMergesLikesAndDislikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)
	seedMovie(t, repo, "tt1", "First", "Drama")
	seedMovie(t, repo, "tt2", "Second", "Comedy")
	seedMovie(t, repo, "tt3", "Third", "Horror")

	repo.LikeMovie(user.ID, "tt1")
	repo.DislikeMovie(user.ID, "tt2")

	excluded, err := repo.GetExcludedIDs(user.ID)
	if err != nil {
		t.Fatalf("GetExcludedIDs() error = %v", err)
	}
	if len(excluded) != 2 {
		t.Fatalf("excluded set = %v, want tt1 and tt2", excluded)
	}
	if _, ok := excluded["tt3"]; ok {
		t.Fatal("tt3 was never seen, must not be excluded")
	}
}

func TestGenreHistogramCountsAndSorts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)
	seedMovie(t, repo, "tt1", "First", "Drama, Crime")
	seedMovie(t, repo, "tt2", "Second", "Drama, Thriller")
	seedMovie(t, repo, "tt3", "Third", "Drama")
	seedMovie(t, repo, "tt4", "Fourth", "")

	for _, id := range []string{"tt1", "tt2", "tt3", "tt4"} {
		if _, err := repo.LikeMovie(user.ID, id); err != nil {
			t.Fatalf("LikeMovie(%s) error = %v", id, err)
		}
	}

	genres, total, err := repo.GetLikedGenreCounts(user.ID)
	if err != nil {
		t.Fatalf("GetLikedGenreCounts() error = %v", err)
	}
	if total != 4 {
		t.Errorf("total_movies = %d, want 4", total)
	}
	if len(genres) != 3 {
		t.Fatalf("histogram = %+v, want 3 genres", genres)
	}
	if genres[0].Genre != "Drama" || genres[0].Count != 3 {
		t.Errorf("top genre = %+v, want Drama x3", genres[0])
	}
	for i := 1; i < len(genres); i++ {
		if genres[i].Count > genres[i-1].Count {
			t.Errorf("histogram not sorted descending: %+v", genres)
		}
	}
}

func TestGenreHistogramEmptyWatchlist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	user := seedUser(t, db)

	genres, total, err := repo.GetLikedGenreCounts(user.ID)
	if err != nil {
		t.Fatalf("GetLikedGenreCounts() error = %v", err)
	}
	if total != 0 || len(genres) != 0 {
		t.Fatalf("got %d genres, total %d, want empty", len(genres), total)
	}
}
