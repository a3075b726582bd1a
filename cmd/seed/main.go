package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dukamart/dukamart-backend/internal/seed"
	"github.com/dukamart/dukamart-backend/pkg/config"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/logger"
	"github.com/dukamart/dukamart-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "migrations", err)
	}

	if err := seed.New(dbClient.DB(), logg).Run(ctx); err != nil {
		requireResource(ctx, logg, "seed data", err)
	}

	logg.Info(ctx, "seed complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
