package main

import (
	"birding-trip-service/internal/adapters/cache"
	"birding-trip-service/internal/adapters/geocode"
	"birding-trip-service/internal/adapters/orsclient"
	"birding-trip-service/internal/adapters/repositories"
	"birding-trip-service/internal/adapters/routing"
	"birding-trip-service/internal/api"
	"birding-trip-service/internal/platform/config"
	"birding-trip-service/internal/platform/db"
	"birding-trip-service/internal/ports"
	"birding-trip-service/internal/services"
	"context"
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
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis/Postgres, ORS) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := openSQLite(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo hotspots on startup for local runs.
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}
	if seedPath := os.Getenv("SEED_PATH"); seedPath != "" {
		if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	repo := repositories.NewSqliteHotspotRepository(sqliteDB)

	deps := api.RouterDeps{
		Repo: repo,
		EnrichConfig: services.EnrichConfig{
			MaxConcurrent: cfg.Enrich.MaxConcurrent,
			MinInterval:   cfg.Enrich.MinInterval.Std(),
		},
		DefaultMaxStops: cfg.Plan.DefaultMaxStops,
	}

	// Routing and geocoding need an ORS key. Without one the service still
	// plans trips using haversine leg estimates, just without optimization
	// or address enrichment.
	if key := strings.TrimSpace(cfg.ORS.APIKey); key != "" {
		client, err := orsclient.New(key, cfg.ORS.BaseURL)
		if err != nil {
			log.Fatal(err)
		}
		deps.Geocoder = geocode.NewORSGeocoder(client)
		deps.Optimizer = routing.NewORSRouteOptimizer(client, cfg.ORS.Profile)
		deps.Fallback = routing.NewORSSequentialRouter(client, cfg.ORS.Profile)
	} else {
		log.Println("ORS_API_KEY not set: using haversine routing, no address enrichment")
		deps.Fallback = &routing.HaversineSequentialRouter{}
	}

	addressCache, cleanup, err := buildAddressCache(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}
	deps.Cache = addressCache

	router := api.NewRouter(deps)

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSQLite(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

// buildAddressCache picks the cache backend by configuration: Redis when an
// address is configured, Postgres when a database URL is configured, none
// otherwise (enrichment then always hits the provider).
func buildAddressCache(cfg config.Config) (ports.AddressCache, func(), error) {
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("verify redis connection to %q: %w", cfg.Redis.Addr, err)
		}
		return cache.NewRedisAddressCache(rdb, cfg.Redis.AddressTTL.Std()), func() { _ = rdb.Close() }, nil
	}

	if cfg.Database.PostgresURL != "" {
		pg, err := db.Open(cfg.Database.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(context.Background(), pg); err != nil {
			return nil, nil, err
		}
		return cache.NewSQLAddressCache(pg, cfg.Redis.AddressTTL.Std()), func() { _ = pg.Close() }, nil
	}

	return nil, nil, nil
}
