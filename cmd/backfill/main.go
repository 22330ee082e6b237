package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// backfill assigns slugs to hotels stored without one. Safe to rerun.
func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, "backfill", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	n, err := run(ctx, cfg)
	stop()
	if err != nil {
		log.Error().Err(err).Int("updated", n).Msg("slug backfill failed")
		os.Exit(1)
	}
	log.Info().Int("updated", n).Msg("slug backfill completed")
}

func run(ctx context.Context, cfg shared.Config) (int, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return 0, fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("db.Ping: %w", err)
	}

	log.Info().Int("batch", cfg.BackfillBatch).Msg("slug backfill starting")
	return app.NewSlugBackfill(mysqlrepo.New(db)).Run(ctx, cfg.BackfillBatch)
}
