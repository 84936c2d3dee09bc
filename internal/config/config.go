// Package config gathers the environment-driven settings in one place.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultSyncEndpoint is where uploads go when the operator configured
// nothing else.
const DefaultSyncEndpoint = "https://jsonplaceholder.typicode.com/posts"

// Config holds every runtime setting the server reads at startup.
type Config struct {
	AppEnv   string
	HTTPAddr string

	// StorageBackend selects the durable slot: file, sqlite, postgres
	// or redis.
	StorageBackend string
	DataDir        string
	SQLitePath     string
	PostgresDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	SyncEndpoint string
	SyncTimeout  time.Duration

	// AutoSyncInterval enables the background sync worker when > 0.
	AutoSyncInterval time.Duration

	ShareSigningKey string
}

// Load reads the environment with development-friendly defaults.
func Load() Config {
	cfg := Config{
		AppEnv:          envOr("APP_ENV", "development"),
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		StorageBackend:  envOr("STORAGE_BACKEND", "sqlite"),
		DataDir:         envOr("DATA_DIR", "./data"),
		SQLitePath:      envOr("SQLITE_PATH", "./data/fieldstore.db"),
		RedisAddr:       envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		SyncEndpoint:    envOr("SYNC_ENDPOINT", DefaultSyncEndpoint),
		SyncTimeout:     15 * time.Second,
		ShareSigningKey: envOr("SHARE_SIGNING_KEY", "dev-share-signing-key"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if v := os.Getenv("SYNC_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.SyncTimeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("AUTO_SYNC_INTERVAL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.AutoSyncInterval = time.Duration(secs) * time.Second
		}
	}

	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		cfg.PostgresDSN = dsn
	} else if host := os.Getenv("PG_HOST"); host != "" {
		cfg.PostgresDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("PG_USER"), os.Getenv("PG_PASSWORD"),
			host, envOr("PG_PORT", "5432"), os.Getenv("PG_DB"))
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
