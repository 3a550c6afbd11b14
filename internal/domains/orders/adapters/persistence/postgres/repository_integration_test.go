//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/persistence/postgres"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
	"github.com/itayost/AmosKitchen-sub001/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("kitchen_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func buildOrder(orderDate, delivery time.Time) *domain.Order {
	items := []domain.Item{{
		ID:       uuid.New(),
		DishID:   uuid.New(),
		DishName: "Pumpkin Soup",
		Quantity: 2,
		Price:    decimal.NewFromFloat(24),
	}}
	return &domain.Order{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Dana Levi",
		OrderDate:    orderDate,
		DeliveryDate: delivery,
		Status:       domain.StatusNew,
		Items:        items,
		TotalAmount:  domain.ComputeTotal(items),
	}
}

func TestPostgresRepository_CreateAssignsSequentialNumbers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	orderDate := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, buildOrder(orderDate, delivery))
	require.NoError(t, err)
	second, err := repo.Create(ctx, buildOrder(orderDate, delivery))
	require.NoError(t, err)

	assert.Equal(t, "ORD-2026-0001", first.Number)
	assert.Equal(t, "ORD-2026-0002", second.Number)

	// A different year starts its own sequence.
	nextYear, err := repo.Create(ctx,
		buildOrder(orderDate.AddDate(1, 0, 0), delivery.AddDate(1, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-2027-0001", nextYear.Number)
}

func TestPostgresRepository_ConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	orderDate := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	const workers = 10
	numbers := make(chan string, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.Create(ctx, buildOrder(orderDate, delivery))
			if err != nil {
				errs <- err
				return
			}
			numbers <- created.Number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := map[string]struct{}{}
	for number := range numbers {
		assert.Regexp(t, `^ORD-2026-\d{4}$`, number)
		_, dup := seen[number]
		assert.False(t, dup, "number %s allocated twice", number)
		seen[number] = struct{}{}
	}
	require.Len(t, seen, workers)
}

func TestPostgresRepository_GetByIDPreloadsItemsAndHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Levi", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Pumpkin Soup", got.Items[0].DishName)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(48)))
	require.Len(t, got.History, 1)
	assert.Equal(t, domain.ActionCreated, got.History[0].Action)
	assert.Equal(t, got.Number, got.History[0].Details["number"])
}

func TestPostgresRepository_ApplyUpdatePersistsStatusAndHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	created.Status = domain.StatusConfirmed
	entry := domain.StatusChangeEntry(created.ID, domain.StatusNew, domain.StatusConfirmed)

	updated, err := repo.ApplyUpdate(ctx, created, []domain.HistoryEntry{entry})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, updated.History, 2)
	// History comes back newest first.
	assert.Equal(t, domain.ActionStatusChange, updated.History[0].Action)
}

func TestPostgresRepository_ListByDeliveryRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	orderDate := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	outside := inside.AddDate(0, 0, 7)

	_, err := repo.Create(ctx, buildOrder(orderDate, inside))
	require.NoError(t, err)
	_, err = repo.Create(ctx, buildOrder(orderDate, outside))
	require.NoError(t, err)

	window, err := repo.ListByDeliveryRange(ctx,
		time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, window, 1)
	require.Len(t, window[0].Items, 1)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
