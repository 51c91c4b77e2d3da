package main

import (
	"context"
	"flag"

	"github.com/RoyceAzure/lab/phonebook/internal/appcontext"
	"github.com/RoyceAzure/lab/phonebook/internal/config"
	"github.com/rs/zerolog/log"
)

// 執行 schema migration, 可選擇匯入 seed 資料
func main() {
	seed := flag.Bool("seed", false, "import seed data after migration")
	seedFile := flag.String("seed-file", "", "seed yaml path, default SEED_FILE")
	flag.Parse()

	cf := config.GetConfig()
	app, err := appcontext.NewMigrationContext(cf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init migration context")
		return
	}
	defer app.Shutdown(context.Background())

	if err := app.Migrate(); err != nil {
		app.Logger.Error().Err(err).Msg("migration failed")
		return
	}

	if *seed {
		path := *seedFile
		if path == "" {
			path = cf.SeedFile
		}
		if err := app.SeedData(context.Background(), path); err != nil {
			app.Logger.Error().Err(err).Msg("seed failed")
		}
	}
}
