package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/models"
	"github.com/nulllpunkt/Cinematch/internal/repository"
	"github.com/nulllpunkt/Cinematch/internal/services"
)

type MovieHandler struct {
	movieRepo repository.MovieRepository
	omdb      services.OMDBService
	discovery services.DiscoveryService
}

func NewMovieHandler(movieRepo repository.MovieRepository, omdb services.OMDBService, discovery services.DiscoveryService) *MovieHandler {
	return &MovieHandler{
		movieRepo: movieRepo,
		omdb:      omdb,
		discovery: discovery,
	}
}

// GetMovie proxies a single catalog lookup by title or imdb id.
func (h *MovieHandler) GetMovie(c *gin.Context) {
	title := c.Query("title")
	imdbID := c.Query("i")

	if title == "" && imdbID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie title or imdb id is required"})
		return
	}

	var (
		movie *models.OmdbMovie
		err   error
	)
	if imdbID != "" {
		movie, err = h.omdb.GetByID(c.Request.Context(), imdbID)
	} else {
		movie, err = h.omdb.GetByTitle(c.Request.Context(), title)
	}

	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data from OMDb"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := h.omdb.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OMDb search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Random returns the diversity browsing queue. Logged-in users never see
// movies they already liked or disliked; anonymous users get the full queue.
func (h *MovieHandler) Random(c *gin.Context) {
	excluded := map[string]struct{}{}
	if userID := c.GetUint("user_id"); userID > 0 {
		ids, err := h.movieRepo.GetExcludedIDs(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		excluded = ids
	}

	results, seeds, err := h.discovery.BuildQueue(c.Request.Context(), excluded)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build movie queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"seeds_used": seeds,
	})
}

func (h *MovieHandler) Like(c *gin.Context) {
	h.addReaction(c, h.movieRepo.LikeMovie, "saved", "Movie already liked")
}

func (h *MovieHandler) Dislike(c *gin.Context) {
	h.addReaction(c, h.movieRepo.DislikeMovie, "disliked", "Movie already disliked")
}

func (h *MovieHandler) addReaction(c *gin.Context, addEdge func(uint, string) (bool, error), key, alreadyMsg string) {
	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imdbID is required"})
		return
	}
	userID := c.GetUint("user_id")

	movie, err := h.ensureCached(c, req.ImdbID)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Could not resolve movie from OMDb"})
			return
		}
		log.Printf("[addReaction] resolving %s: %v", req.ImdbID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve movie"})
		return
	}

	created, err := addEdge(userID, movie.ImdbID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": alreadyMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key: gin.H{"imdbID": movie.ImdbID, "title": movie.Title},
	})
}

// ensureCached returns the locally cached movie row, fetching and persisting
// it from the provider on first reaction. Rows created here are never
// refreshed afterwards.
func (h *MovieHandler) ensureCached(c *gin.Context, imdbID string) (*models.Movie, error) {
	movie, err := h.movieRepo.GetMovieByImdbID(imdbID)
	if err != nil {
		return nil, err
	}
	if movie != nil {
		return movie, nil
	}

	record, err := h.omdb.GetByID(c.Request.Context(), imdbID)
	if err != nil {
		return nil, err
	}

	movie = &models.Movie{
		ImdbID:     record.ImdbID,
		Title:      record.Title,
		Year:       parseYear(record.Year),
		PosterURL:  record.Poster,
		Genre:      record.Genre,
		Plot:       record.Plot,
		ImdbRating: record.ImdbRating,
	}
	if err := h.movieRepo.CreateMovie(movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (h *MovieHandler) Unlike(c *gin.Context) {
	imdbID := c.Param("imdb_id")
	userID := c.GetUint("user_id")

	deleted, err := h.movieRepo.UnlikeMovie(userID, imdbID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"deleted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *MovieHandler) Watchlist(c *gin.Context) {
	userID := c.GetUint("user_id")

	movies, err := h.movieRepo.GetWatchlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	watchlist := make([]gin.H, 0, len(movies))
	for _, movie := range movies {
		watchlist = append(watchlist, gin.H{
			"imdbID":     movie.ImdbID,
			"Title":      movie.Title,
			"Year":       movie.Year,
			"Poster":     movie.PosterURL,
			"Genre":      movie.Genre,
			"imdbRating": movie.ImdbRating,
		})
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": watchlist})
}

// parseYear takes the leading year of provider values like "1999" or
// "2008–2013". Anything non-numeric becomes 0.
func parseYear(raw string) int {
	lead, _, _ := strings.Cut(raw, "–")
	year, err := strconv.Atoi(lead)
	if err != nil {
		return 0
	}
	return year
}
