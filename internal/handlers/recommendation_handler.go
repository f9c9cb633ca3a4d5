package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/models"
	"github.com/nulllpunkt/Cinematch/internal/services"
)

const maxRecommendations = 5

type RecommendationHandler struct {
	classifier services.GenreClassifier
	omdb       services.OMDBService
}

func NewRecommendationHandler(classifier services.GenreClassifier, omdb services.OMDBService) *RecommendationHandler {
	return &RecommendationHandler{classifier: classifier, omdb: omdb}
}

// Cinebot classifies the user's free text into one of the 19 genres, then
// turns the predicted genre into a catalog search and returns full records
// for a handful of the hits.
func (h *RecommendationHandler) Cinebot(c *gin.Context) {
	var req models.CinebotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide 'text' (string) in body"})
		return
	}

	genre, err := h.classifier.Classify(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrModelUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Genre classification model not loaded on server"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Genre classification failed"})
		return
	}

	results, err := h.omdb.Search(c.Request.Context(), genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OMDb search failed after recommendation"})
		return
	}

	rand.Shuffle(len(results), func(i, j int) {
		results[i], results[j] = results[j], results[i]
	})

	limit := maxRecommendations
	if len(results) < limit {
		limit = len(results)
	}

	recommendations := make([]*models.OmdbMovie, 0, limit)
	for _, item := range results[:limit] {
		if item.ImdbID == "" {
			continue
		}
		detail, err := h.omdb.GetByID(c.Request.Context(), item.ImdbID)
		if err != nil {
			continue
		}
		recommendations = append(recommendations, detail)
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"predicted_genre": genre,
	})
}
