package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"transport-catalogue-service/internal/adapters/requests"
	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/ports"
)

// Create the snapshot tables. The DDL is shared by SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		name TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createBusesQuery := `
	CREATE TABLE IF NOT EXISTS buses (
		name TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL
	);
	`

	createBusStopsQuery := `
	CREATE TABLE IF NOT EXISTS bus_stops (
		bus_name TEXT NOT NULL,
		stop_index INTEGER NOT NULL,
		stop_name TEXT NOT NULL,
		PRIMARY KEY (bus_name, stop_index)
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS road_distances (
		from_stop TEXT NOT NULL,
		to_stop TEXT NOT NULL,
		seq INTEGER NOT NULL,
		meters INTEGER NOT NULL,
		PRIMARY KEY (from_stop, to_stop)
	);
	`

	createRoutingQuery := `
	CREATE TABLE IF NOT EXISTS routing_settings (
		id INTEGER PRIMARY KEY,
		bus_wait_time DOUBLE PRECISION NOT NULL,
		bus_velocity DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_bus_stops_stop_name
	ON bus_stops(stop_name);
	`

	statements := []string{
		createStopsQuery,
		createBusesQuery,
		createBusStopsQuery,
		createDistancesQuery,
		createRoutingQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored snapshot with the base data of a JSON request document.
// The data is checked by building a catalogue before anything is written.
func SeedFromJSON(ctx context.Context, repo ports.SnapshotRepository, jsonPath string) error {
	f, err := os.Open(jsonPath)
	if err != nil {
		return fmt.Errorf("seed snapshot: open %q: %w", jsonPath, err)
	}
	defer f.Close()

	doc, err := requests.ParseDocument(f)
	if err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}

	snap := requests.NewReader().Snapshot(doc)
	if _, err := catalogue.FromSnapshot(snap); err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}

	if err := repo.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}

	return nil
}
