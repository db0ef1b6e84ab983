package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	"storefront/internal/seed"
)

func main() {
	cfg := config.Load()
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	log.Info().Msg("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	res, err := seed.Run(context.Background(), gormDB)
	if err != nil {
		log.Fatal().Err(err).Msg("seed sample data")
	}
	if res.Skipped {
		log.Info().Msg("store already holds data; nothing seeded")
		return
	}

	log.Info().
		Int("categories", res.Categories).
		Int("products", res.Products).
		Int("users", res.Users).
		Int("cart_items", res.CartItems).
		Msg("seed completed")
}
