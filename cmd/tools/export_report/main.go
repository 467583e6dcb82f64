package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"asset-management-api/internal/config"
	"asset-management-api/internal/logger"
	"asset-management-api/internal/models"
	"asset-management-api/internal/store"
	"asset-management-api/pkg/report"
)

func main() {
	cfg := config.Load()

	var (
		out    = flag.String("out", fmt.Sprintf("asset_report_%s.xlsx", models.DateOf(time.Now())), "Output file")
		driver = flag.String("driver", cfg.Database.Driver, "Database driver (sqlite or postgres)")
		dsn    = flag.String("dsn", cfg.Database.DSN, "Database DSN")
	)
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})
	cfg.Database.Driver, cfg.Database.DSN = *driver, *dsn
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := store.Open(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	st := store.New(db)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	assets, err := st.ListAssets(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list assets")
	}
	views := make([]models.AssetView, len(assets))
	for i, a := range assets {
		views[i] = models.NewAssetView(a)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create output file")
	}
	if err := report.WriteAssets(f, views); err != nil {
		f.Close()
		log.Fatal().Err(err).Msg("failed to write report")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close output file")
	}

	fmt.Printf("Wrote %d assets to %s\n", len(views), *out)
}
