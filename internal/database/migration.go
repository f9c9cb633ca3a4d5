package database

import (
	"fmt"
	"log"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

func AutoMigrate() error {
	tables := []interface{}{
		&models.User{},
		&models.Movie{},
		&models.UserLike{},
		&models.UserDislike{},
	}

	for _, table := range tables {
		if err := DB.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	log.Println("✅ Database migration completed")
	return nil
}
