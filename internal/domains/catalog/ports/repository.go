package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
)

var (
	ErrDishNotFound            = errors.New("dish not found")
	ErrIngredientNotFound      = errors.New("ingredient not found")
	ErrDuplicateIngredientName = errors.New("ingredient name already exists")
	ErrDishReferencedByOrders  = errors.New("dish is referenced by orders")
	ErrIngredientInUse         = errors.New("ingredient is referenced by dishes")
)

// DishFilter narrows dish listings.
type DishFilter struct {
	Category      string
	AvailableOnly bool
	Search        string
}

// IngredientFilter narrows ingredient listings.
type IngredientFilter struct {
	Category     string
	Supplier     string
	LowStockOnly bool
	Search       string
}

// DishRepository persists dishes and their bills of materials.
type DishRepository interface {
	Create(ctx context.Context, dish *domain.Dish) (*domain.Dish, error)
	Update(ctx context.Context, dish *domain.Dish) (*domain.Dish, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dish, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Dish, error)
	List(ctx context.Context, filter DishFilter) ([]*domain.Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IngredientRepository persists inventory ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error)
	Update(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingredient, error)
	List(ctx context.Context, filter IngredientFilter) ([]*domain.Ingredient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
