// Command cleanup-tokens deletes expired and revoked refresh tokens. It is
// intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	tokenrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/token"
	"github.com/carbonaegis/aegis-backend/internal/app"
	"github.com/carbonaegis/aegis-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	deleted, err := tokenrepo.New(pool).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup tokens: %v", err)
	}

	logger.Info("token cleanup finished", slog.Int("deleted", deleted))
}
