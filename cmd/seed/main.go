// Package main provides a CLI tool for migrating the database and seeding the reference lists.
package main

import (
	"context"
	"fmt"
	"os"

	"devinventory/internal/config"
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/infrastructure/storage/postgres"
	"devinventory/internal/infrastructure/storage/postgres/catalog_repo"
	"devinventory/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		log.Fatalw("seeding requires postgres storage", "driver", cfg.Storage.Driver)
	}

	ctx := context.Background()

	if err := postgres.Migrate(ctx, cfg.Database.URL); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}
	log.Info("migrations applied")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	itemTypeRepo := catalog_repo.NewItemTypeRepo(txm)
	divisionRepo := catalog_repo.NewDivisionRepo(txm)

	itemTypes := itemtype.NewService(itemTypeRepo, txm)
	divisions := division.NewService(divisionRepo, txm)

	created := 0
	for _, d := range itemtype.Defaults {
		exists, err := itemTypeRepo.ExistsByCode(ctx, d.Code)
		if err != nil {
			log.Fatalw("failed to check item type", "code", d.Code, "error", err)
		}
		if exists {
			continue
		}
		if err := itemTypes.Create(ctx, itemtype.NewItemType(d.Code, d.Name)); err != nil {
			log.Fatalw("failed to seed item type", "code", d.Code, "error", err)
		}
		created++
	}
	log.Infow("item types seeded", "created", created, "total", len(itemtype.Defaults))

	created = 0
	for _, name := range division.Defaults {
		exists, err := divisionRepo.ExistsByCode(ctx, division.NormalizeCode(name))
		if err != nil {
			log.Fatalw("failed to check division", "name", name, "error", err)
		}
		if exists {
			continue
		}
		if err := divisions.Create(ctx, division.NewDivision(name)); err != nil {
			log.Fatalw("failed to seed division", "name", name, "error", err)
		}
		created++
	}
	log.Infow("divisions seeded", "created", created, "total", len(division.Defaults))
}
