package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Lock backends.
const (
	LockLocal = "local"
	LockRedis = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string
	StorageBackend string
	JWTSecret      string
	JWTIssuer      string

	DBMaxConns       int32
	DBConnectTimeout time.Duration

	// Branch locking
	LockBackend   string
	BranchLockTTL time.Duration
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Catalog cache, disabled when zero or without Redis
	CatalogCacheTTL time.Duration

	// Delivery events
	PubSubProjectID       string
	PubSubCredentialsJSON string
	DeliveryTopicID       string

	ConflictMaxRetries   int
	ConflictRetryBackoff time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
	DefaultPhoneRegion string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("STORAGE_BACKEND", StoragePostgres)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	viper.SetDefault("LOCK_BACKEND", LockLocal)
	viper.SetDefault("BRANCH_LOCK_TTL", "10s")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_CACHE_TTL", "5m")
	viper.SetDefault("PUBSUB_PROJECT_ID", "")
	viper.SetDefault("PUBSUB_CREDENTIALS_JSON", "")
	viper.SetDefault("DELIVERY_TOPIC_ID", "")
	viper.SetDefault("CONFLICT_MAX_RETRIES", 3)
	viper.SetDefault("CONFLICT_RETRY_BACKOFF", "25ms")
	viper.SetDefault("RATE_LIMIT", "600-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("DEFAULT_PHONE_REGION", "CL")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           viper.GetString("DATABASE_URL"),
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:        viper.GetString("MIGRATIONS_PATH"),
		StorageBackend:        strings.ToLower(viper.GetString("STORAGE_BACKEND")),
		JWTSecret:             viper.GetString("JWT_SECRET"),
		JWTIssuer:             viper.GetString("JWT_ISSUER"),
		DBMaxConns:            viper.GetInt32("DB_MAX_CONNS"),
		LockBackend:           strings.ToLower(viper.GetString("LOCK_BACKEND")),
		RedisAddress:          viper.GetString("REDIS_ADDRESS"),
		RedisPassword:         viper.GetString("REDIS_PASSWORD"),
		RedisDB:               viper.GetInt("REDIS_DB"),
		PubSubProjectID:       viper.GetString("PUBSUB_PROJECT_ID"),
		PubSubCredentialsJSON: viper.GetString("PUBSUB_CREDENTIALS_JSON"),
		DeliveryTopicID:       viper.GetString("DELIVERY_TOPIC_ID"),
		ConflictMaxRetries:    viper.GetInt("CONFLICT_MAX_RETRIES"),
		RateLimit:             viper.GetString("RATE_LIMIT"),
		DefaultPhoneRegion:    strings.ToUpper(viper.GetString("DEFAULT_PHONE_REGION")),
	}

	cfg.DBConnectTimeout = durationOrDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.BranchLockTTL = durationOrDefault("BRANCH_LOCK_TTL", 10*time.Second)
	cfg.CatalogCacheTTL = durationOrDefault("CATALOG_CACHE_TTL", 5*time.Minute)
	cfg.ConflictRetryBackoff = durationOrDefault("CONFLICT_RETRY_BACKOFF", 25*time.Millisecond)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.ConflictMaxRetries < 0 {
		cfg.ConflictMaxRetries = 0
	}

	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s storage backend", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: using in-memory storage. Data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	switch cfg.LockBackend {
	case LockLocal:
	case LockRedis:
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("REDIS_ADDRESS is required for the %s lock backend", LockRedis)
		}
	default:
		return nil, fmt.Errorf("unknown LOCK_BACKEND %q", cfg.LockBackend)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.DeliveryTopicID != "" && cfg.PubSubProjectID == "" {
		log.Println("Warning: DELIVERY_TOPIC_ID set without PUBSUB_PROJECT_ID. Delivery events will only be logged.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
