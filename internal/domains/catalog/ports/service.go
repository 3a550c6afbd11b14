package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
)

// DishIngredientInput is one bill-of-materials line on a dish payload.
type DishIngredientInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Notes        string
}

// DishInput carries the fields accepted on dish create/update. On update the
// ingredient list is a full replacement.
type DishInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Available   bool
	Tags        []string
	Ingredients []DishIngredientInput
}

// IngredientInput carries the fields accepted on ingredient create/update.
type IngredientInput struct {
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	CostPerUnit  decimal.Decimal
	Supplier     string
	Category     string
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateDish(ctx context.Context, input DishInput) (*domain.Dish, error)
	UpdateDish(ctx context.Context, id uuid.UUID, input DishInput) (*domain.Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error)
	ListDishes(ctx context.Context, filter DishFilter) ([]*domain.Dish, error)
	DeleteDish(ctx context.Context, id uuid.UUID) error

	CreateIngredient(ctx context.Context, input IngredientInput) (*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, input IngredientInput) (*domain.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, filter IngredientFilter) ([]*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*domain.Ingredient, error)
	SetStock(ctx context.Context, id uuid.UUID, value decimal.Decimal) (*domain.Ingredient, error)
}
