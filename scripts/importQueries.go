package main

import (
	"log"
	"os"

	"cqms/config"
	"cqms/database"
)

// Bulk-imports query rows from a CSV export into the live database.
// Usage: go run scripts/importQueries.go [path/to/queries.csv]
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := config.AppConfig.ImportCSV
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	inserted, err := database.ImportQueriesCSV(database.Database.Db, path)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d rows inserted from %s", inserted, path)
}
