package main

import (
	"log"

	"anoa.com/jelajahpath/internal/bootstrap"
	"anoa.com/jelajahpath/internal/config"
	"anoa.com/jelajahpath/internal/server"
	"anoa.com/jelajahpath/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoUsers(db); err != nil {
			log.Fatalf("failed to seed users: %v", err)
		}
		if err := bootstrap.SeedDemoCatalog(db); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
	}

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	if redisClient == nil {
		log.Println("REDIS_URL not set, caching and rate limiting disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
