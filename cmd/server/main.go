package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"rental-dispatch-service/internal/adapters/cache"
	"rental-dispatch-service/internal/adapters/geocode"
	"rental-dispatch-service/internal/adapters/repositories"
	"rental-dispatch-service/internal/api"
	"rental-dispatch-service/internal/config"
	"rental-dispatch-service/internal/platform/db"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis, geocoding providers) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/demo.json")
	port := config.Get("PORT", "8080")

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqlDB, seedPath); err != nil {
		log.Fatal(err)
	}

	geocodeCache, err := newGeocodeCache(sqlDB)
	if err != nil {
		log.Fatal(err)
	}

	provider, err := newGeocoder()
	if err != nil {
		log.Fatal(err)
	}
	geocoder := geocode.NewCachedGeocoder(provider, geocodeCache)

	repo := repositories.NewPostgresRepository(sqlDB)

	router := api.NewRouter(api.Deps{
		Bookings:    repo,
		Drivers:     repo,
		Warehouses:  repo,
		Items:       repo,
		Geocoder:    geocoder,
		Recommender: services.DefaultRecommenderConfig(),
		MaxRecs:     5,
	})

	// Write timeout covers cold-cache recommendation requests, which may
	// geocode several addresses against the external provider.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// newGeocodeCache picks the cache backend from GEOCODE_CACHE: "redis" (shared
// across instances), "postgres" (persistent, no extra infra), or the default
// in-process LRU.
func newGeocodeCache(sqlDB *sql.DB) (ports.GeocodeCache, error) {
	switch backend := config.Get("GEOCODE_CACHE", "memory"); backend {
	case "redis":
		addr := config.Get("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisGeocodeCache(client, 24*time.Hour), nil
	case "postgres":
		return cache.NewPostgresGeocodeCache(sqlDB), nil
	case "memory":
		return cache.NewMemoryGeocodeCache(0), nil
	default:
		return nil, fmt.Errorf("unknown GEOCODE_CACHE %q", backend)
	}
}

// newGeocoder picks the provider from GEOCODER: nominatim by default, google
// when an API key is configured.
func newGeocoder() (ports.Geocoder, error) {
	switch provider := config.Get("GEOCODER", "nominatim"); provider {
	case "nominatim":
		userAgent := config.Get("NOMINATIM_USER_AGENT", "rental-dispatch-service/1.0")
		return geocode.NewNominatimGeocoder(userAgent), nil
	case "google":
		return geocode.NewGoogleGeocoder(os.Getenv("GOOGLE_MAPS_API_KEY"))
	default:
		return nil, fmt.Errorf("unknown GEOCODER %q", provider)
	}
}

func initAndSeed(sqlDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
