package main

import (
	"os"

	"riceguard/internal/app/dsn"
	"riceguard/internal/app/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Creates the local storage table. STORAGE_DRIVER=postgres uses DB_* variables,
// otherwise STORAGE_PATH (default riceguard.db) is a sqlite file.
func main() {
	_ = godotenv.Load()

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	path := os.Getenv("STORAGE_PATH")
	if path == "" {
		path = "riceguard.db"
	}

	db, err := repository.Open(driver, dsn.ForStorage(driver, path))
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("cant migrate db: %v", err)
	}
	log.Infof("%s storage migrated", driver)
}
