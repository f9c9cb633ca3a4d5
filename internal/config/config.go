package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string
	SecretKey  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	OMDBAPIKey string
	OMDBAPIURL string

	ModelAPIURL   string
	ModelAPIToken string

	CORSOrigin string

	// Requests per minute allowed per client IP on the cinebot endpoint.
	CinebotRateLimit int
}

var GlobalConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENV", "development")

	rateLimit, err := strconv.Atoi(getEnv("CINEBOT_RATE_LIMIT", "20"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 20
	}

	GlobalConfig = &Config{
		Env:        env,
		ServerPort: getEnv("SERVER_PORT", "8080"),
		SecretKey:  getEnv("SECRET_KEY", "dev-secret-key-change-in-production"),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cinematch"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "cinematch.db"),

		OMDBAPIKey: getEnv("OMDB_API_KEY", ""),
		OMDBAPIURL: getEnv("OMDB_API_URL", "http://www.omdbapi.com/"),

		ModelAPIURL:   getEnv("MODEL_API_URL", "https://api-inference.huggingface.co/models/AventIQ-AI/bert-movie-recommendation-system"),
		ModelAPIToken: getEnv("MODEL_API_TOKEN", ""),

		CORSOrigin: getEnv("CORS_ORIGIN", ""),

		CinebotRateLimit: rateLimit,
	}

	if GlobalConfig.OMDBAPIKey == "" {
		log.Println("⚠️ OMDB_API_KEY not set, catalog lookups will fail")
	}
	if env == "production" && GlobalConfig.SecretKey == "dev-secret-key-change-in-production" {
		log.Fatal("❌ SECRET_KEY must be set in production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
