package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"hos-trip-planner/internal/adapters/cache"
	"hos-trip-planner/internal/adapters/repositories"
	"hos-trip-planner/internal/adapters/routing"
	"hos-trip-planner/internal/api"
	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/platform/db"
	"hos-trip-planner/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, Nominatim, optional
// Postgres/Redis caches) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	tripDBPath := config.Get("TRIPS_DB_PATH", "data/trips.db")
	osrmURL := config.Get("OSRM_BASE_URL", routing.DefaultOSRMBaseURL)
	nominatimURL := config.Get("NOMINATIM_BASE_URL", routing.DefaultNominatimBaseURL)

	zone, err := time.LoadLocation(config.Get("LOG_TZ", "UTC"))
	if err != nil {
		log.Fatalf("invalid LOG_TZ: %v", err)
	}

	tripDB, err := openTripDB(tripDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer tripDB.Close()

	geocodeCache, routeCache, closeCaches := openCaches()
	defer closeCaches()

	provider, err := routing.NewOSRMRouteProvider(osrmURL, routeCache)
	if err != nil {
		log.Fatal(err)
	}
	geocoder, err := routing.NewNominatimGeocoder(nominatimURL, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteTripRepository(tripDB)
	router := api.NewRouter(repo, provider, geocoder, zone)

	// Timeouts are tuned for cold-cache trip planning (two external
	// API round trips before the scheduler even starts).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openTripDB(path string) (*sql.DB, error) {
	tripDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("openTripDB: open sqlite database %q: %w", path, err)
	}

	if err := tripDB.Ping(); err != nil {
		return nil, fmt.Errorf("openTripDB: verify sqlite connection to %q: %w", path, err)
	}

	// Schema init on startup keeps local runs zero-setup.
	if err := repositories.InitTripSchema(tripDB); err != nil {
		return nil, fmt.Errorf("openTripDB: %w", err)
	}

	return tripDB, nil
}

// openCaches wires the geocode/route caches from whatever backing
// stores are configured: Redis for geocoding when REDIS_ADDR is set,
// Postgres for both when DATABASE_URL is set, nil (no caching)
// otherwise. The returned func closes whatever was opened.
func openCaches() (ports.GeocodeCache, ports.RouteCache, func()) {
	var (
		geocodeCache ports.GeocodeCache
		routeCache   ports.RouteCache
		closers      []func()
	)

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(context.Background(), databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		closers = append(closers, func() { _ = pg.Close() })

		if err := cache.InitCacheSchema(pg); err != nil {
			log.Fatal(err)
		}
		geocodeCache = cache.NewPGGeocodeCache(pg)
		routeCache = cache.NewPGRouteCache(pg)
		log.Println("Using postgres geocode/route caches")
	}

	if redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); redisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		closers = append(closers, func() { _ = client.Close() })

		geocodeCache = cache.NewRedisGeocodeCache(client, 24*time.Hour)
		log.Println("Using redis geocode cache")
	}

	return geocodeCache, routeCache, func() {
		for _, c := range closers {
			c()
		}
	}
}
