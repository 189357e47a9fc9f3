package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/atech/cms/pkg/config"
	"github.com/atech/cms/pkg/database"
	"github.com/atech/cms/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL, cfg.AppEnv == "development")
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := runMigrations(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
