package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"medicine-finder-service/internal/adapters/cache"
	"medicine-finder-service/internal/adapters/location"
	"medicine-finder-service/internal/adapters/repositories"
	"medicine-finder-service/internal/adapters/storage"
	"medicine-finder-service/internal/api"
	"medicine-finder-service/internal/config"
	"medicine-finder-service/internal/platform/db"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, object storage) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")

	ctx := context.Background()
	database, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	deps := api.RouterDeps{
		Stores:    repositories.NewSQLStoreRepository(database),
		Medicines: repositories.NewSQLMedicineRepository(database),
		Customers: repositories.NewSQLCustomerRepository(database),
		Cache:     searchCache(ctx),
		Objects:   objectStore(),
		Location:  locationService(),
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// searchCache connects to Redis when configured; searches fall back to
// hitting the database directly otherwise.
func searchCache(ctx context.Context) ports.SearchCache {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		log.Println("REDIS_ADDR not set, search caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("verify redis connection to %q: %v", addr, err)
	}

	ttl, err := time.ParseDuration(config.Get("SEARCH_CACHE_TTL", "5m"))
	if err != nil {
		log.Fatalf("SEARCH_CACHE_TTL must be a duration: %v", err)
	}

	return cache.NewRedisSearchCache(client, ttl)
}

// objectStore enables image uploads when a storage endpoint is
// configured; the upload endpoints report unavailability otherwise.
func objectStore() ports.ObjectStore {
	baseURL := os.Getenv("STORAGE_URL")
	if strings.TrimSpace(baseURL) == "" {
		log.Println("STORAGE_URL not set, image uploads disabled")
		return nil
	}

	apiKey := os.Getenv("STORAGE_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("STORAGE_API_KEY is required when STORAGE_URL is set")
	}

	return storage.NewHTTPObjectStore(baseURL, apiKey, nil)
}

// locationService picks the position provider: a fixed mock position
// for local runs, otherwise a coarse GeoIP lookup.
func locationService() *services.LocationService {
	var provider ports.LocationProvider

	switch config.Get("LOCATION_PROVIDER", "geoip") {
	case "mock":
		provider = location.NewMockLocationProvider(28.6139, 77.2090)
	case "geoip":
		provider = location.NewGeoIPLocationProvider(os.Getenv("GEOIP_URL"), nil)
	case "none":
		provider = nil
	default:
		log.Fatal("LOCATION_PROVIDER must be one of geoip, mock, none")
	}

	return services.NewLocationService(provider)
}
