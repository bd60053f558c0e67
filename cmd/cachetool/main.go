package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"pax-route-planner/internal/adapters/repositories"
	"pax-route-planner/internal/platform/config"
)

// main is a maintenance CLI for the two persistence layers the planner
// relies on: it initializes the Postgres solved_plans schema and, with
// -flush-cache, empties the Redis plan cache. Replaces the teacher's
// cmd/dbtool, which seeded a SQLite package table this repo has no
// equivalent of (plans are solved on the fly, never seeded).
func main() {
	flushCache := flag.Bool("flush-cache", false, "flush the Redis plan cache")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	log.Println("Initializing solved_plans schema...")
	if err := repositories.InitPlanSchema(ctx, pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *flushCache {
		addr := config.Get("REDIS_ADDR", "")
		if strings.TrimSpace(addr) == "" {
			log.Fatal("REDIS_ADDR is required to flush the plan cache")
		}
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()

		if err := client.FlushDB(ctx).Err(); err != nil {
			log.Fatalf("flush plan cache: %v", err)
		}
		log.Println("Plan cache flushed.")
	}
}
