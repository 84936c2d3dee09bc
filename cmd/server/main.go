package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"echomap/fieldstore/internal/api"
	"echomap/fieldstore/internal/cache"
	"echomap/fieldstore/internal/config"
	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/metrics"
	"echomap/fieldstore/internal/prefs"
	"echomap/fieldstore/internal/routes"
	"echomap/fieldstore/internal/share"
	"echomap/fieldstore/internal/storage"
	"echomap/fieldstore/internal/store"
	"echomap/fieldstore/internal/syncer"
	"echomap/fieldstore/internal/workers"
)

var version = "dev"

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Field store starting up",
		"environment", cfg.AppEnv,
		"version", version,
		"storage_backend", cfg.StorageBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recordSlot, err := openSlot(cfg, storage.RecordsKey)
	if err != nil {
		logging.Error("failed to open record slot", "error", err.Error())
		log.Fatalf("failed to open record slot: %v", err)
	}
	defer recordSlot.Close()

	prefsSlot, err := openSlot(cfg, storage.PrefsKey)
	if err != nil {
		logging.Error("failed to open prefs slot", "error", err.Error())
		log.Fatalf("failed to open prefs slot: %v", err)
	}
	defer prefsSlot.Close()

	recordStore, err := store.Open(ctx, recordSlot)
	if err != nil {
		logging.Error("failed to load record store", "error", err.Error())
		log.Fatalf("failed to load record store: %v", err)
	}
	logging.Info("Record store loaded",
		"records", recordStore.Len(),
		"pending_sync", recordStore.PendingCount(),
	)

	prefStore := prefs.Open(ctx, prefsSlot)

	endpoint := cfg.SyncEndpoint
	if override := prefStore.Get().SyncEndpoint; override != "" {
		endpoint = override
	}
	sync := syncer.New(recordStore, endpoint, cfg.SyncTimeout, version)

	deps := &api.Dependencies{
		Store:               recordStore,
		Syncer:              sync,
		Prefs:               prefStore,
		Signer:              share.NewSigner([]byte(cfg.ShareSigningKey)),
		Cache:               cache.NewMemory(time.Minute, 5*time.Minute),
		Metrics:             metrics.NewMetricsRegistry(),
		DefaultSyncEndpoint: cfg.SyncEndpoint,
	}

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, recordSlot, upSince)

	// Metrics endpoint lives outside the chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.AutoSyncInterval > 0 {
		worker := workers.NewAutoSyncWorker(sync, recordStore, cfg.SyncTimeout)
		g.Go(func() error {
			worker.Start(gctx, cfg.AutoSyncInterval)
			return nil
		})
	}

	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logging.Info("Shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

// openSlot builds the configured storage backend for one key.
func openSlot(cfg config.Config, key string) (storage.Slot, error) {
	switch cfg.StorageBackend {
	case "file":
		return storage.NewFileSlot(cfg.DataDir, key)
	case "sqlite":
		return storage.NewSQLiteSlot(cfg.SQLitePath, key)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend selected but no DSN configured")
		}
		return storage.NewPostgresSlot(cfg.PostgresDSN, key)
	case "redis":
		return storage.NewRedisSlot(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, key)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
