package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nulllpunkt/Cinematch/internal/config"
)

var DB *gorm.DB

// ConnectDB opens the application database. Postgres is used when DB_HOST is
// set; otherwise a local sqlite file keeps development zero-config.
func ConnectDB() error {
	cfg := config.GlobalConfig

	var dialector gorm.Dialector
	if cfg.DBHost != "" {
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	logMode := logger.Warn
	if cfg.Env == "development" {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBHost != "" {
		log.Println("✅ Database connected (PostgreSQL)")
	} else {
		log.Printf("✅ Database connected (sqlite: %s)", cfg.SQLitePath)
	}
	return nil
}
