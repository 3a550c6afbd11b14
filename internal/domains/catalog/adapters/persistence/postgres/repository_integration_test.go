//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
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

func buildIngredient(t *testing.T, name string) *domain.Ingredient {
	t.Helper()
	ing, err := domain.NewIngredient(name, "kg",
		decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(5),
		"Green Farm", "vegetables")
	require.NoError(t, err)
	return ing
}

func TestIngredientRepository_CreateRejectsNamesDifferingOnlyByCase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewIngredientRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, buildIngredient(t, "Flour"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, buildIngredient(t, "flour"))
	assert.ErrorIs(t, err, ports.ErrDuplicateIngredientName)
	_, err = repo.Create(ctx, buildIngredient(t, "FLOUR"))
	assert.ErrorIs(t, err, ports.ErrDuplicateIngredientName)
}

func TestIngredientRepository_UpdateRejectsTakenNameAnyCase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewIngredientRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, buildIngredient(t, "Flour"))
	require.NoError(t, err)
	sugar, err := repo.Create(ctx, buildIngredient(t, "Sugar"))
	require.NoError(t, err)

	sugar.Name = "fLoUr"
	_, err = repo.Update(ctx, sugar)
	assert.ErrorIs(t, err, ports.ErrDuplicateIngredientName)

	// Renaming an ingredient to a fresh name still works.
	sugar.Name = "Brown Sugar"
	renamed, err := repo.Update(ctx, sugar)
	require.NoError(t, err)
	assert.Equal(t, "Brown Sugar", renamed.Name)
}
