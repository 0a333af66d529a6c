package main

import (
	"context"

	"github.com/hrunx/Gasable-sub001/internal/infrastructure/postgres"
	"github.com/hrunx/Gasable-sub001/internal/migrate"
	"github.com/hrunx/Gasable-sub001/pkg/config"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	log.Info().Msg("migrations applied")
}
