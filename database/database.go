package database

import (
	"cqms/config"
	"cqms/models"
	"errors"
	"io/fs"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the SQLite database file, runs migrations and seeds
// the default data.
func ConnectDb() {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBName), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", config.AppConfig.DBName, err)
	}

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}

	seedData(db)
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Query{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedData creates the default login accounts and, when the queries table
// is still empty, imports the seed CSV. A missing CSV file is not an
// error; anything else during seeding is fatal.
func seedData(db *gorm.DB) {
	if err := SeedDefaultUsers(db); err != nil {
		log.Fatalf("Failed to seed default users: %v", err)
	}

	var count int64
	if err := db.Model(&models.Query{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count queries: %v", err)
	}
	if count > 0 {
		return
	}

	inserted, err := ImportQueriesCSV(db, config.AppConfig.ImportCSV)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Seed CSV %s not found, skipping import", config.AppConfig.ImportCSV)
			return
		}
		log.Fatalf("Failed to import seed CSV: %v", err)
	}
	log.Printf("Imported %d queries from %s", inserted, config.AppConfig.ImportCSV)
}
