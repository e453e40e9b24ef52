package main

import (
	"context"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"ice.edu/helpinghand/internal/bootstrap"
	"ice.edu/helpinghand/internal/config"
	"ice.edu/helpinghand/internal/server"
	"ice.edu/helpinghand/pkg/database"
	"ice.edu/helpinghand/pkg/logger"
	"ice.edu/helpinghand/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		appLogger.Fatal("migration failed", "error", err)
	}

	seeder := bootstrap.NewSeeder(db)
	created, err := seeder.EnsureDefaults(context.Background())
	if err != nil {
		appLogger.Fatal("failed to seed defaults", "error", err)
	}
	if created {
		appLogger.Info("default admin account created",
			"email", bootstrap.DefaultAdminEmail)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			appLogger.Fatal("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			appLogger.Warn("redis unreachable, login rate limiting disabled", "error", err)
			redisClient = nil
		}
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	var fileStorage storage.FileStorage
	if cfg.CloudinaryURL != "" {
		fileStorage, err = storage.NewCloudinaryStorage("helpinghand")
	} else {
		fileStorage, err = storage.NewLocalStorage(cfg.UploadDir, cfg.UploadPath)
	}
	if err != nil {
		appLogger.Fatal("failed to initialize file storage", "error", err)
	}

	srv := server.NewServer(server.Deps{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		MeiliClient: meiliClient,
		FileStorage: fileStorage,
		Logger:      appLogger,
	})

	appLogger.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		appLogger.Fatal("server exited with error", "error", err)
	}
}
