package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"transport-catalogue-service/internal/adapters/repositories"
	"transport-catalogue-service/internal/api"
	"transport-catalogue-service/internal/config"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/platform/db"
	"transport-catalogue-service/internal/platform/obs"
	"transport-catalogue-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It loads the stored catalogue snapshot, builds the route graph once and
// serves read-only queries over HTTP.
func main() {
	obs.InitLogging()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", config.DefaultPath))
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.OpenDriver(cfg.Storage.Driver, cfg.Storage.SQLitePath, cfg.Storage.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	snap, err := loadOrSeed(ctx, conn, cfg)
	if err != nil {
		log.Fatal(err)
	}

	svc, err := services.NewTransportFromSnapshot(snap, services.TransportOptions{
		Routing:        cfg.Routing,
		StatsTTL:       cfg.Cache.StatsTTL,
		RouteCacheSize: cfg.Cache.RouteCacheSize,
	})
	if err != nil {
		log.Fatal(err)
	}

	origins := strings.Split(config.Get("CORS_ORIGINS", "*"), ",")
	router := api.NewRouter(svc, origins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: err=%v", err)
		}
	}()

	log.Printf("Server listening addr=%s stops=%d buses=%d",
		addr, svc.Catalogue().StopCount(), svc.Catalogue().BusCount())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// loadOrSeed returns the stored snapshot, seeding it from the configured
// base document on first start.
func loadOrSeed(ctx context.Context, conn *sql.DB, cfg config.Config) (domain.Snapshot, error) {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return domain.Snapshot{}, fmt.Errorf("load or seed: %w", err)
	}

	repo, err := repositories.NewSnapshotRepository(cfg.Storage.Driver, conn)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load or seed: %w", err)
	}

	snap, err := repo.LoadSnapshot(ctx)
	if errors.Is(err, repositories.ErrNoSnapshot) {
		log.Printf("No stored snapshot, seeding path=%s", cfg.Seed.Path)
		if err := repositories.SeedFromJSON(ctx, repo, cfg.Seed.Path); err != nil {
			return domain.Snapshot{}, fmt.Errorf("load or seed: %w", err)
		}
		snap, err = repo.LoadSnapshot(ctx)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load or seed: %w", err)
	}

	if snap.Routing != nil {
		if err := config.ValidateRouting(*snap.Routing); err != nil {
			return domain.Snapshot{}, fmt.Errorf("load or seed: stored snapshot: %w", err)
		}
	}

	return snap, nil
}
