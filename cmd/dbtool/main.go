package main

import (
	"context"
	"log"

	"transport-catalogue-service/internal/adapters/repositories"
	"transport-catalogue-service/internal/config"
	"transport-catalogue-service/internal/platform/db"
	"transport-catalogue-service/internal/platform/obs"

	"github.com/joho/godotenv"
)

// dbtool creates the schema and replaces the stored snapshot with the base
// document named by SEED_PATH (or seed.path in the config file).
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

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	repo, err := repositories.NewSnapshotRepository(cfg.Storage.Driver, conn)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Seeding database from %s...", cfg.Seed.Path)
	if err := repositories.SeedFromJSON(ctx, repo, cfg.Seed.Path); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
