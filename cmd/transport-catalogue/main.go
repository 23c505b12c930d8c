package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"transport-catalogue-service/internal/adapters/repositories"
	"transport-catalogue-service/internal/adapters/requests"
	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/config"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/platform/db"
	"transport-catalogue-service/internal/platform/obs"
	"transport-catalogue-service/internal/services"

	"github.com/joho/godotenv"
)

const usage = `usage: transport-catalogue [-config path] make_base|process_requests|run < requests.json

  make_base         store the base requests in the snapshot database
  process_requests  answer stat requests against the stored snapshot
  run               load base requests and answer stat requests in one pass
`

func main() {
	obs.InitLoggingTo(os.Stderr)
	_ = godotenv.Load()

	configPath := flag.String("config", config.Get("CONFIG_PATH", config.DefaultPath), "config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background(), flag.Arg(0), os.Stdin, os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, mode string, in io.Reader, out io.Writer, cfg config.Config) error {
	switch mode {
	case "make_base", "process_requests", "run":
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	doc, err := requests.ParseDocument(in)
	if err != nil {
		return err
	}

	switch mode {
	case "make_base":
		return makeBase(ctx, doc, cfg)
	case "process_requests":
		return processRequests(ctx, doc, out, cfg)
	default:
		return answer(ctx, requests.NewReader().Snapshot(doc), doc.StatRequests, out, cfg)
	}
}

func makeBase(ctx context.Context, doc requests.Document, cfg config.Config) error {
	snap := requests.NewReader().Snapshot(doc)
	if _, err := catalogue.FromSnapshot(snap); err != nil {
		return fmt.Errorf("make base: %w", err)
	}

	repo, closeDB, err := openRepository(ctx, doc, cfg)
	if err != nil {
		return fmt.Errorf("make base: %w", err)
	}
	defer closeDB()

	if err := repo.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("make base: %w", err)
	}

	log.Printf("base stored stops=%d buses=%d distances=%d", len(snap.Stops), len(snap.Buses), len(snap.Distances))
	return nil
}

func processRequests(ctx context.Context, doc requests.Document, out io.Writer, cfg config.Config) error {
	repo, closeDB, err := openRepository(ctx, doc, cfg)
	if err != nil {
		return fmt.Errorf("process requests: %w", err)
	}
	defer closeDB()

	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("process requests: %w", err)
	}

	if snap.Routing != nil {
		if err := config.ValidateRouting(*snap.Routing); err != nil {
			return fmt.Errorf("process requests: stored snapshot: %w", err)
		}
	}

	return answer(ctx, snap, doc.StatRequests, out, cfg)
}

func answer(ctx context.Context, snap domain.Snapshot, reqs []requests.StatRequest, out io.Writer, cfg config.Config) error {
	svc, err := services.NewTransportFromSnapshot(snap, services.TransportOptions{
		Routing:        cfg.Routing,
		StatsTTL:       cfg.Cache.StatsTTL,
		RouteCacheSize: cfg.Cache.RouteCacheSize,
	})
	if err != nil {
		return err
	}

	answers, err := requests.AnswerAll(ctx, svc, reqs)
	if err != nil {
		return err
	}

	return requests.WriteAnswers(out, answers)
}

// openRepository opens the snapshot store named by serialization_settings.file,
// falling back to the configured storage.
func openRepository(ctx context.Context, doc requests.Document, cfg config.Config) (*repositories.SQLSnapshotRepository, func(), error) {
	driver, path := cfg.Storage.Driver, cfg.Storage.SQLitePath
	if doc.Serialization != nil {
		driver, path = db.DriverSQLite, doc.Serialization.File
	}

	conn, err := db.OpenDriver(driver, path, cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := conn.Close(); err != nil {
			log.Printf("close db failed: err=%v", err)
		}
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		closeDB()
		return nil, nil, err
	}

	repo, err := repositories.NewSnapshotRepository(driver, conn)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return repo, closeDB, nil
}
