package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	kitchenserver "github.com/itayost/AmosKitchen-sub001/go"

	catalogmemory "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/application"
	catalogports "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
	customermemory "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/application"
	customerports "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
	ordermemory "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/memory"
	orderobs "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/application"
	orderports "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
	reportapp "github.com/itayost/AmosKitchen-sub001/internal/domains/reports/application"
	platformmigrations "github.com/itayost/AmosKitchen-sub001/internal/platform/migrations"
	platformobservability "github.com/itayost/AmosKitchen-sub001/internal/platform/observability"
	platformpostgres "github.com/itayost/AmosKitchen-sub001/internal/platform/postgres"
)

// repositories groups the persistence adapters for all bounded contexts so
// the postgres and in-memory wirings stay interchangeable.
type repositories struct {
	customers   customerports.Repository
	dishes      catalogports.DishRepository
	ingredients catalogports.IngredientRepository
	orders      orderports.Repository
	cleanup     func()
}

// Run boots the kitchen HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "kitchen-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, err := buildRepositories(ctx, logger)
	if err != nil {
		return err
	}
	defer repos.cleanup()

	customerService := customerapp.NewService(repos.customers)
	catalogService := catalogapp.NewService(repos.dishes, repos.ingredients)
	coreOrderService := orderapp.NewService(
		repos.orders,
		customerDirectory{repo: repos.customers},
		dishCatalog{repo: repos.dishes},
	)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reportService := reportapp.NewService(repos.orders, repos.dishes, repos.ingredients)

	handlers := kitchenserver.ApiHandleFunctions{
		CustomerAPI:   kitchenserver.NewCustomerAPI(customerService),
		DishAPI:       kitchenserver.NewDishAPI(catalogService),
		IngredientAPI: kitchenserver.NewIngredientAPI(catalogService),
		OrderAPI:      kitchenserver.NewOrderAPI(orderService),
		ReportsAPI:    kitchenserver.NewReportsAPI(reportService),
	}

	// Middleware must be installed before routes are registered to apply.
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := kitchenserver.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	logger.Info("kitchen API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("kitchen API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories connects to PostgreSQL when POSTGRES_DSN is set, running
// schema migrations first; otherwise it falls back to in-memory adapters with
// the cross-context delete guards wired by hand.
func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, error) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return memoryRepositories(), nil
	}
	if err := platformmigrations.Run(db); err != nil {
		cleanup()
		return repositories{}, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		customers:   customerpostgres.NewRepository(db),
		dishes:      catalogpostgres.NewDishRepository(db),
		ingredients: catalogpostgres.NewIngredientRepository(db),
		orders:      orderpostgres.NewRepository(db),
		cleanup:     cleanup,
	}, nil
}

func memoryRepositories() repositories {
	orders := ordermemory.NewRepository()
	customers := customermemory.NewRepository()
	customers.InUse = orders.HasOrdersFor
	dishes := catalogmemory.NewDishRepository()
	dishes.InUse = orders.HasItemsFor
	ingredients := catalogmemory.NewIngredientRepository()
	ingredients.InUse = dishes.UsesIngredient
	return repositories{
		customers:   customers,
		dishes:      dishes,
		ingredients: ingredients,
		orders:      orders,
		cleanup:     func() {},
	}
}
