package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"veristat/adapters/api"
	"veristat/adapters/postgres"
	"veristat/internal"
	"veristat/internal/config"
	"veristat/ports"
)

func main() {
	_ = godotenv.Load()

	log := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	var repo ports.ReportRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Error("database migration failed: %v", err)
			os.Exit(1)
		}
		repo = postgres.NewReportRepository(db)
		log.Info("report persistence enabled")
	} else {
		log.Warn("DATABASE_URL not set, runs will not be persisted")
	}

	router := api.NewRouter(api.NewHandler(cfg.SignificanceLevel, repo, log))
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Error("server failed: %v", err)
		os.Exit(1)
	}
}
