package main

import (
	"log"

	"github.com/craftmarket/api/config"
	"github.com/craftmarket/api/models"
	"github.com/craftmarket/api/routes"
	"github.com/craftmarket/api/seed"
	"github.com/craftmarket/api/session"
	"github.com/craftmarket/api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	// Create missing tables only; existing schema is left untouched
	if err := config.EnsureSchema(db, models.All()...); err != nil {
		utils.Sugar.Fatalf("schema init failed: %v", err)
	}

	if cfg.Backend.SeedData {
		if err := seed.Run(db, seed.DefaultOptions()); err != nil {
			utils.Sugar.Fatalf("seeding failed: %v", err)
		}
		utils.Sugar.Info("sample data seeded")
	}

	sessions := session.NewProvider(db)
	r := routes.SetupRouter(cfg, sessions, utils.Logger)

	addr := cfg.Backend.Addr()
	utils.Sugar.Infof("starting server on %s (graceful)", addr)
	if err := utils.GraceServer(addr, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
