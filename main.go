package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"trialstat/adapters/postgres"
	"trialstat/internal"
	"trialstat/internal/config"
	"trialstat/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	archive := connectArchive(cfg)

	app, err := ui.NewApp(cfg, archive)
	if err != nil {
		log.Fatalf("[Main] Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("[Main] Server failed: %v", err)
	}
}

// connectArchive opens the optional result archive. A missing DATABASE_URL
// disables archiving; a failing connection does too, with a warning, since
// the pipeline works fully in memory.
func connectArchive(cfg *config.Config) *postgres.ResultRepository {
	if cfg.Database.URL == "" {
		internal.DefaultLogger.Info("DATABASE_URL not set, result archive disabled")
		return nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		internal.DefaultLogger.Warn("archive database unavailable, continuing without it: %v", err)
		return nil
	}

	archive := postgres.NewResultRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.EnsureSchema(ctx); err != nil {
		internal.DefaultLogger.Warn("failed to prepare archive schema, continuing without it: %v", err)
		return nil
	}

	internal.DefaultLogger.Info("result archive enabled")
	return archive
}
