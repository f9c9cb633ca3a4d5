package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/middleware"
	"github.com/nulllpunkt/Cinematch/internal/models"
	"github.com/nulllpunkt/Cinematch/internal/repository"
)

type AuthHandler struct {
	userRepo repository.UserRepository
}

func NewAuthHandler(userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{userRepo: userRepo}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email, and password are required"})
		return
	}

	existing, err := h.userRepo.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	existing, err = h.userRepo.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := h.userRepo.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.userRepo.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := middleware.SetSessionCookie(c, user.ID); err != nil {
		log.Printf("[Register] failed to issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifier (email or username) and password are required"})
		return
	}

	// Accept 'identifier' or the legacy 'email'/'username' fields.
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifier (email or username) and password are required"})
		return
	}

	user, err := h.userRepo.FindUserByIdentifier(identifier)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.userRepo.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := middleware.SetSessionCookie(c, user.ID); err != nil {
		log.Printf("[Login] failed to issue session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Session reports whether the request carries a valid session. Mounted with
// the optional session middleware, so anonymous requests get a 200 too.
func (h *AuthHandler) Session(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusOK, gin.H{"is_logged_in": false})
		return
	}

	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"is_logged_in": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_logged_in": true,
		"user":         gin.H{"id": user.ID, "username": user.Username},
	})
}
