package main

import (
	"context"
	"log"

	"github.com/campusgo/admin-backend/internal/bootstrap"
	"github.com/campusgo/admin-backend/internal/config"
	"github.com/campusgo/admin-backend/internal/server"
	"github.com/campusgo/admin-backend/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.Seed(db, cfg.AppEnv); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(db, redisClient)

	// Other instances publish config changes over redis; the watcher keeps
	// this instance's cache in sync.
	if redisClient != nil {
		go srv.ConfigService().Watch(context.Background())
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when no URL is configured; the app degrades to
// DB-only behavior without the live bell stream.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis ping failed, continuing without redis: %v", err)
		return nil
	}

	return client
}
