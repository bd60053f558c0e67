package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"pax-route-planner/internal/adapters/cache"
	adaptergeo "pax-route-planner/internal/adapters/geo"
	"pax-route-planner/internal/adapters/repositories"
	"pax-route-planner/internal/api"
	"pax-route-planner/internal/platform/config"
	"pax-route-planner/internal/platform/db"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
)

// main is the application composition root: wires concrete adapters
// (a static geography table, a Redis plan cache or a no-op stand-in, a
// Postgres plan repository) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	cfg := geo.DefaultConfig()

	provider, err := buildDistanceProvider()
	if err != nil {
		log.Fatal(err)
	}

	planCache := buildPlanCache()

	planRepo, cleanup := buildPlanRepository()
	if cleanup != nil {
		defer cleanup()
	}

	router := api.NewRouter(provider, cfg, planCache, planRepo)

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

func buildDistanceProvider() (ports.DistanceMatrixProvider, error) {
	path := config.Get("DISTANCE_CSV_PATH", "")
	if strings.TrimSpace(path) == "" {
		return adaptergeo.NewStaticTable(nil), nil
	}
	return adaptergeo.LoadDistanceCSV(path)
}

func buildPlanCache() ports.PlanCache {
	addr := config.Get("REDIS_ADDR", "")
	if strings.TrimSpace(addr) == "" {
		log.Println("REDIS_ADDR not set, running without a plan cache")
		return cache.NoOpPlanCache{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return cache.NewRedisPlanCache(client)
}

func buildPlanRepository() (ports.PlanRepository, func()) {
	ctx := context.Background()

	if databaseURL := config.Get("DATABASE_URL", ""); strings.TrimSpace(databaseURL) != "" {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			log.Fatalf("connect to postgres: %v", err)
		}
		if err := repositories.InitPlanSchema(ctx, pool); err != nil {
			log.Fatalf("init plan schema: %v", err)
		}
		return repositories.NewPgPlanRepository(pool), pool.Close
	}

	if sqlitePath := config.Get("SQLITE_PATH", ""); strings.TrimSpace(sqlitePath) != "" {
		sqlDB, err := db.OpenSQLite(sqlitePath)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		if err := repositories.InitSQLiteSchema(sqlDB); err != nil {
			log.Fatalf("init sqlite schema: %v", err)
		}
		return repositories.NewSqlitePlanRepository(sqlDB), func() { sqlDB.Close() }
	}

	log.Println("neither DATABASE_URL nor SQLITE_PATH set, running without a plan repository")
	return nil, nil
}
