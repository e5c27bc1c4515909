package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	"hos-trip-planner/internal/adapters/cache"
	"hos-trip-planner/internal/adapters/repositories"
	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool initializes the schemas the service depends on: the SQLite
// trip store, and the Postgres cache tables when DATABASE_URL is set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	tripDBPath := config.Get("TRIPS_DB_PATH", "data/trips.db")
	if err := initTripStore(tripDBPath); err != nil {
		log.Fatal(err)
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Println("DATABASE_URL not set; skipping postgres cache schema")
		return
	}
	if err := initCacheStore(databaseURL); err != nil {
		log.Fatal(err)
	}
}

func initTripStore(path string) error {
	log.Printf("Initializing trip store at %s...", path)

	tripDB, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer tripDB.Close()

	if err := repositories.InitTripSchema(tripDB); err != nil {
		return err
	}
	log.Println("Trip store ready.")
	return nil
}

func initCacheStore(databaseURL string) error {
	log.Println("Initializing postgres cache schema...")

	pg, err := db.Open(context.Background(), databaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := cache.InitCacheSchema(pg); err != nil {
		return err
	}
	log.Println("Cache schema ready.")
	return nil
}
