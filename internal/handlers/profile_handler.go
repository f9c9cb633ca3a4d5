package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/models"
	"github.com/nulllpunkt/Cinematch/internal/repository"
)

type ProfileHandler struct {
	userRepo  repository.UserRepository
	movieRepo repository.MovieRepository
}

func NewProfileHandler(userRepo repository.UserRepository, movieRepo repository.MovieRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, movieRepo: movieRepo}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":     user.Username,
		"email":        user.Email,
		"member_since": user.CreatedAt.Format("January 2006"),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and email are required"})
		return
	}

	if req.Username != user.Username {
		existing, err := h.userRepo.FindUserByUsername(req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
	}
	if req.Email != user.Email {
		existing, err := h.userRepo.FindUserByEmail(req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
	}

	if err := h.userRepo.UpdateProfile(user, req.Username, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    gin.H{"username": user.Username, "email": user.Email},
	})
}

// Stats summarizes the watchlist into a favorite-genre histogram.
func (h *ProfileHandler) Stats(c *gin.Context) {
	userID := c.GetUint("user_id")

	genres, total, err := h.movieRepo.GetLikedGenreCounts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorite_genres": genres,
		"total_movies":    total,
	})
}

func (h *ProfileHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetUint("user_id")
	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}
