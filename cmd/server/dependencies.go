package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"devinventory/internal/config"
	corelock "devinventory/internal/core/lock"
	"devinventory/internal/core/tx"
	"devinventory/internal/domain/audit"
	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/domain/device"
	"devinventory/internal/infrastructure/http/v1/handlers"
	"devinventory/internal/infrastructure/lock"
	"devinventory/internal/infrastructure/numerator"
	"devinventory/internal/infrastructure/storage/memory"
	"devinventory/internal/infrastructure/storage/postgres"
	"devinventory/internal/infrastructure/storage/postgres/catalog_repo"
	"devinventory/internal/infrastructure/storage/postgres/device_repo"
	"devinventory/pkg/logger"
)

// dependencies holds the wired services and the resources to release on exit.
type dependencies struct {
	ItemTypes *itemtype.Service
	Divisions *division.Service
	Devices   *device.Service

	pool   *postgres.Pool
	redis  *redis.Client
	checks map[string]handlers.Pinger
}

// Close releases connections.
func (d *dependencies) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// Health builds the health handler over the configured backends.
func (d *dependencies) Health(cfg *config.Config) *handlers.HealthHandler {
	return handlers.NewHealthHandler(cfg.App.Version, cfg.Storage.Driver, d.checks)
}

type repositories struct {
	itemTypes itemtype.Repository
	divisions division.Repository
	devices   device.Repository
	txManager tx.Manager
	audit     audit.Recorder
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{checks: make(map[string]handlers.Pinger)}

	var repos repositories
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn(ctx, "using in-memory storage; data is lost on restart")
		repos = repositories{
			itemTypes: memory.NewItemTypeRepo(),
			divisions: memory.NewDivisionRepo(),
			devices:   memory.NewDeviceRepo(),
			txManager: tx.Nop{},
			audit:     memory.NewAuditRecorder(),
		}

	default:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.URL); err != nil {
				return nil, err
			}
		}

		poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
		if cfg.Database.MaxConns > 0 {
			poolCfg.MaxConns = cfg.Database.MaxConns
		}
		if cfg.Database.MinConns > 0 {
			poolCfg.MinConns = cfg.Database.MinConns
		}
		pool, err := postgres.NewPool(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		deps.pool = pool
		deps.checks["database"] = pool

		txm := postgres.NewTxManager(pool)
		auditSvc, err := postgres.NewAuditService(txm, cfg.Audit.CompressThreshold)
		if err != nil {
			deps.Close()
			return nil, err
		}
		repos = repositories{
			itemTypes: catalog_repo.NewItemTypeRepo(txm),
			divisions: catalog_repo.NewDivisionRepo(txm),
			devices:   device_repo.New(txm),
			txManager: txm,
			audit:     auditSvc,
		}
	}

	locker, err := deps.buildLocker(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.ItemTypes = itemtype.NewService(repos.itemTypes, repos.txManager)
	deps.Divisions = division.NewService(repos.divisions, repos.txManager)

	if cfg.Storage.Driver == config.StorageMemory {
		if err := seedDefaults(ctx, deps.ItemTypes, deps.Divisions); err != nil {
			deps.Close()
			return nil, err
		}
	}

	deps.Devices = device.NewService(device.ServiceConfig{
		Repo:        repos.devices,
		Allocator:   numerator.New(repos.devices),
		Locker:      locker,
		TxManager:   repos.txManager,
		Audit:       repos.audit,
		ItemTypes:   deps.ItemTypes,
		Divisions:   deps.Divisions,
		MaxAttempts: cfg.Allocator.MaxAttempts,
	})

	return deps, nil
}

// buildLocker returns the Redis bucket lock when Redis is configured, the in-process lock otherwise.
// The in-process lock only serializes allocations inside this instance; the
// unique index on kode_id and the retry loop cover the rest.
func (d *dependencies) buildLocker(ctx context.Context, cfg *config.Config) (corelock.Locker, error) {
	if !cfg.Redis.Enabled() {
		logger.Info(ctx, "kode allocation lock: in-process")
		return lock.NewLocal(cfg.Allocator.LockWait), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	d.redis = client
	d.checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})

	logger.Info(ctx, "kode allocation lock: redis", "addr", cfg.Redis.Addr)
	return lock.NewRedis(client, lock.RedisLockerConfig{
		TTL:  cfg.Allocator.LockTTL,
		Wait: cfg.Allocator.LockWait,
	}), nil
}

// seedDefaults fills the in-memory reference lists; PostgreSQL is seeded by cmd/seed.
func seedDefaults(ctx context.Context, itemTypes *itemtype.Service, divisions *division.Service) error {
	for _, d := range itemtype.Defaults {
		if err := itemTypes.Create(ctx, itemtype.NewItemType(d.Code, d.Name)); err != nil {
			return fmt.Errorf("seed item type %s: %w", d.Code, err)
		}
	}
	for _, name := range division.Defaults {
		if err := divisions.Create(ctx, division.NewDivision(name)); err != nil {
			return fmt.Errorf("seed division %s: %w", name, err)
		}
	}
	return nil
}
