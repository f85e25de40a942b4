//go:build integration

package device_repo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/domain/device"
	"devinventory/internal/infrastructure/lock"
	"devinventory/internal/infrastructure/numerator"
	"devinventory/internal/infrastructure/storage/postgres"
	"devinventory/internal/infrastructure/storage/postgres/catalog_repo"
	"devinventory/internal/infrastructure/storage/postgres/device_repo"
)

func startPostgres(t *testing.T) *postgres.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, dsn))

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newService(t *testing.T, pool *postgres.Pool) *device.Service {
	t.Helper()
	ctx := context.Background()
	txm := postgres.NewTxManager(pool)

	itemTypes := itemtype.NewService(catalog_repo.NewItemTypeRepo(txm), txm)
	for _, d := range itemtype.Defaults {
		require.NoError(t, itemTypes.Create(ctx, itemtype.NewItemType(d.Code, d.Name)))
	}
	divisions := division.NewService(catalog_repo.NewDivisionRepo(txm), txm)
	for _, name := range division.Defaults {
		require.NoError(t, divisions.Create(ctx, division.NewDivision(name)))
	}

	auditSvc, err := postgres.NewAuditService(txm, 0)
	require.NoError(t, err)

	repo := device_repo.New(txm)
	return device.NewService(device.ServiceConfig{
		Repo:      repo,
		Allocator: numerator.New(repo),
		Locker:    lock.NewLocal(5 * time.Second),
		TxManager: txm,
		Audit:     auditSvc,
		ItemTypes: itemTypes,
		Divisions: divisions,
	})
}

func newDevice(code string, purchased time.Time) *device.Device {
	d := device.New()
	d.ItemTypeCode = code
	d.PurchaseDate = purchased
	d.Location = "Gudang"
	d.Division = "IT"
	d.Brand = "Lenovo"
	return d
}

func TestDeviceRepo_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool := startPostgres(t)
	svc := newService(t, pool)
	ctx := context.Background()
	purchased := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("sequential and reused after delete", func(t *testing.T) {
		var created []*device.Device
		for i := 0; i < 3; i++ {
			d := newDevice("01", purchased)
			require.NoError(t, svc.Create(ctx, d))
			created = append(created, d)
		}
		assert.Equal(t, "INV-01-003-24", created[2].KodeID)

		require.NoError(t, svc.Delete(ctx, created[2].ID))
		again := newDevice("01", purchased)
		require.NoError(t, svc.Create(ctx, again))
		assert.Equal(t, "INV-01-003-24", again.KodeID)
	})

	t.Run("concurrent creates stay unique", func(t *testing.T) {
		const n = 20
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[string]bool)
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d := newDevice("07", purchased)
				if !assert.NoError(t, svc.Create(ctx, d)) {
					return
				}
				mu.Lock()
				seen[d.KodeID] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, n)
		assert.True(t, seen[fmt.Sprintf("INV-07-%03d-24", n)])
	})

	t.Run("update keeps kode and journals", func(t *testing.T) {
		d := newDevice("10", purchased)
		require.NoError(t, svc.Create(ctx, d))

		d.Notes = "moved to lantai 3"
		require.NoError(t, svc.Update(ctx, d))

		stored, err := svc.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "INV-10-001-24", stored.KodeID)
		assert.Equal(t, "moved to lantai 3", stored.Notes)
		assert.Equal(t, d.Version, stored.Version)

		history, err := svc.History(ctx, d.ID, 0)
		require.NoError(t, err)
		require.Len(t, history, 2)
	})

	t.Run("list and summary", func(t *testing.T) {
		res, err := svc.List(ctx, device.ListFilter{ItemType: "Monitor", Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, res.TotalCount)
		assert.Len(t, res.Items, 2)

		summary, err := svc.Summary(ctx, device.ListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 24, summary.Total)
		assert.EqualValues(t, 24, summary.ByCondition[device.ConditionGood])

		brands, err := svc.UniqueValues(ctx, "merk")
		require.NoError(t, err)
		assert.Equal(t, []string{"Lenovo"}, brands)
	})
}
