package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/core/services"
	"github.com/SscSPs/vetpos_backend/internal/handlers"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
	"github.com/SscSPs/vetpos_backend/internal/platform/config"
	"github.com/SscSPs/vetpos_backend/internal/platform/events"
	"github.com/SscSPs/vetpos_backend/internal/platform/lock"
	"github.com/SscSPs/vetpos_backend/internal/platform/phone"
	"github.com/SscSPs/vetpos_backend/internal/repositories/cache"
	"github.com/SscSPs/vetpos_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/vetpos_backend/internal/repositories/memory"
	"github.com/SscSPs/vetpos_backend/pkg/database"
)

// @title VetPOS Backend API
// @version 1.0
// @description Point-of-sale core for veterinary and pet retail branches: stock ledger, sales, cash sessions and delivery linkage.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, cleanup := setupStorage(ctx, cfg, logger)
	defer cleanup()

	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rdb.Close()
		logger.Info("Redis connection established.", slog.String("address", cfg.RedisAddress))

		if cfg.CatalogCacheTTL > 0 {
			repos.ProductRepo = cache.NewProductCache(rdb, repos.ProductRepo, cfg.CatalogCacheTTL)
			logger.Info("Catalog cache enabled", slog.Duration("ttl", cfg.CatalogCacheTTL))
		}
	}

	var locker portssvc.BranchLocker = lock.NewLocal(cfg.BranchLockTTL)
	if cfg.LockBackend == config.LockRedis {
		locker = lock.NewRedis(rdb, cfg.BranchLockTTL)
	}
	logger.Info("Branch locking configured", slog.String("backend", cfg.LockBackend))

	var publisher portssvc.DeliveryPublisher = events.LogPublisher{}
	if cfg.PubSubProjectID != "" && cfg.DeliveryTopicID != "" {
		pub, err := events.NewPubSubPublisher(ctx, cfg.PubSubProjectID, cfg.PubSubCredentialsJSON, cfg.DeliveryTopicID)
		if err != nil {
			logger.Error("Failed to initialize Pub/Sub publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logger.Error("Error closing Pub/Sub publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = pub
		logger.Info("Delivery events published to Pub/Sub", slog.String("topic", cfg.DeliveryTopicID))
	}

	container := services.NewServiceContainer(cfg, repos, services.Dependencies{
		Locker:    locker,
		Publisher: publisher,
		Phones:    phone.NewNormalizer(cfg.DefaultPhoneRegion),
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage builds the repository provider for the configured backend.
// The returned func releases whatever was opened.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func()) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Info("Using seeded in-memory storage", slog.String("branch_id", memory.DemoBranchID))
		return memory.NewSeeded().Provider(), func() {}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:       cfg.DBMaxConns,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
