package routes

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/config"
	"github.com/nulllpunkt/Cinematch/internal/handlers"
	"github.com/nulllpunkt/Cinematch/internal/metrics"
	"github.com/nulllpunkt/Cinematch/internal/middleware"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	movieHandler *handlers.MovieHandler,
	profileHandler *handlers.ProfileHandler,
	recommendationHandler *handlers.RecommendationHandler,
) *gin.Engine {

	cfg := config.GlobalConfig

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(metrics.Middleware())

	// =========================
	// CORS CONFIG (DEV / PROD)
	// =========================
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.Env == "production" {
		if cfg.CORSOrigin == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is NOT set in production!")
		}
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	} else {
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
		if cfg.CORSOrigin != "" {
			allowedOrigins = append(allowedOrigins, cfg.CORSOrigin)
		}
		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.")
		}
	}
	router.Use(cors.New(corsConfig))

	// =========================
	// SECURITY HEADERS
	// =========================
	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// =========================
	// API ROUTES
	// =========================
	api := router.Group("/api")
	{
		// ---------- AUTH ----------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/session", middleware.SessionOptional(), authHandler.Session)

		// ---------- CATALOG (PUBLIC) ----------
		api.GET("/movies", movieHandler.GetMovie)
		api.GET("/search", movieHandler.Search)
		api.GET("/random", middleware.SessionOptional(), movieHandler.Random)

		// ---------- CINEBOT (PUBLIC, RATE LIMITED) ----------
		api.POST("/cinebot",
			middleware.RateLimit(cfg.CinebotRateLimit),
			recommendationHandler.Cinebot)

		// ---------- PROTECTED ----------
		protected := api.Group("/")
		protected.Use(middleware.SessionRequired())
		{
			protected.POST("/logout", authHandler.Logout)

			protected.POST("/like", movieHandler.Like)
			protected.POST("/dislike", movieHandler.Dislike)
			protected.DELETE("/like/:imdb_id", movieHandler.Unlike)
			protected.GET("/watchlist", movieHandler.Watchlist)

			protected.GET("/profile", profileHandler.GetProfile)
			protected.POST("/profile", profileHandler.UpdateProfile)
			protected.GET("/profile/stats", profileHandler.Stats)
		}
	}

	// =========================
	// HEALTH & METRICS
	// =========================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})
	router.GET("/metrics", metrics.Handler())

	return router
}
