// Command seed-factors loads an emission factor CSV dataset into the
// reference table. It is intended to be run offline, not as part of the
// main server.
//
// Flags:
//
//	--file     path to the factor CSV file (required)
//	--dry-run  parse the file without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	factorrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/factor"
	"github.com/carbonaegis/aegis-backend/internal/app"
	"github.com/carbonaegis/aegis-backend/internal/app/seeder"
	"github.com/carbonaegis/aegis-backend/internal/config"
)

func main() {
	file := flag.String("file", "", "path to the factor CSV file")
	dryRun := flag.Bool("dry-run", false, "parse without writing to DB")
	flag.Parse()

	if *file == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open %s: %v", *file, err)
	}
	defer f.Close()

	loader := seeder.NewLoader(logger, factorrepo.New(pool), *dryRun)

	stats, err := loader.LoadCSV(ctx, f)
	if err != nil {
		log.Fatalf("load factors: %v", err)
	}

	logger.Info("factor dataset loaded",
		slog.String("file", *file),
		slog.Bool("dry_run", *dryRun),
		slog.Int("parsed", stats.Parsed),
		slog.Int("upserted", stats.Upserted),
		slog.Int("skipped", stats.Skipped),
	)
}
