package database

import (
	"log"

	"agency-tracker-api/internal/config"
	"agency-tracker-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the SQLite database and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func InitDB(cfg config.DatabaseConfig) {
	var err error

	logMode := logger.Silent
	if cfg.LogQueries {
		logMode = logger.Info
	}

	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Task{},
		&models.TaskComment{},
	)
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
