package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nulllpunkt/Cinematch/internal/config"
	"github.com/nulllpunkt/Cinematch/internal/database"
	"github.com/nulllpunkt/Cinematch/internal/handlers"
	"github.com/nulllpunkt/Cinematch/internal/repository"
	"github.com/nulllpunkt/Cinematch/internal/routes"
	"github.com/nulllpunkt/Cinematch/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	cfg := config.GlobalConfig

	// =========================
	// CONNECT DATABASE
	// =========================
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// =========================
	// INIT REPOSITORIES
	// =========================
	userRepo := repository.NewUserRepository(database.DB)
	movieRepo := repository.NewMovieRepository(database.DB)

	// =========================
	// INIT SERVICES
	// =========================
	omdbService := services.NewOMDBService(cfg.OMDBAPIKey, cfg.OMDBAPIURL)
	discoveryService := services.NewDiscoveryService(omdbService, nil)

	// The model adapter warms up once here; a failed warm-up pins it
	// unavailable for the process lifetime instead of crashing the server.
	classifier := services.NewClassifierService(cfg.ModelAPIURL, cfg.ModelAPIToken)

	// =========================
	// INIT HANDLERS
	// =========================
	authHandler := handlers.NewAuthHandler(userRepo)
	movieHandler := handlers.NewMovieHandler(movieRepo, omdbService, discoveryService)
	profileHandler := handlers.NewProfileHandler(userRepo, movieRepo)
	recommendationHandler := handlers.NewRecommendationHandler(classifier, omdbService)

	// =========================
	// SETUP ROUTER & SERVER
	// =========================
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRoutes(authHandler, movieHandler, profileHandler, recommendationHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 CineMatch API listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}
	log.Println("Server stopped")
}
