package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	dishes      ports.DishRepository
	ingredients ports.IngredientRepository
}

// NewService wires the catalog service with its dependencies.
func NewService(dishes ports.DishRepository, ingredients ports.IngredientRepository) *Service {
	return &Service{dishes: dishes, ingredients: ingredients}
}

// CreateDish validates the payload, checks every bill-of-materials line
// against the inventory, and persists the dish.
func (s *Service) CreateDish(ctx context.Context, input ports.DishInput) (*domain.Dish, error) {
	bom, err := s.resolveBOM(ctx, input.Ingredients)
	if err != nil {
		return nil, mapError(err)
	}
	dish, err := domain.NewDish(input.Name, input.Description, input.Price, input.Category, input.Available, input.Tags, bom)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.dishes.Create(ctx, dish)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateDish overrides a dish; the ingredient list is a full replacement.
func (s *Service) UpdateDish(ctx context.Context, id uuid.UUID, input ports.DishInput) (*domain.Dish, error) {
	existing, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	bom, err := s.resolveBOM(ctx, input.Ingredients)
	if err != nil {
		return nil, mapError(err)
	}
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Category = input.Category
	existing.Available = input.Available
	existing.Tags = input.Tags
	existing.Ingredients = bom
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.dishes.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetDish loads a single dish with its bill of materials.
func (s *Service) GetDish(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return dish, nil
}

// ListDishes returns dishes matching the filter.
func (s *Service) ListDishes(ctx context.Context, filter ports.DishFilter) ([]*domain.Dish, error) {
	dishes, err := s.dishes.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return dishes, nil
}

// DeleteDish removes a dish. Dishes referenced by orders cannot be deleted.
func (s *Service) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if err := s.dishes.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// CreateIngredient persists a new inventory ingredient with a unique name.
func (s *Service) CreateIngredient(ctx context.Context, input ports.IngredientInput) (*domain.Ingredient, error) {
	ing, err := domain.NewIngredient(input.Name, input.Unit, input.CurrentStock, input.MinStock, input.CostPerUnit, input.Supplier, input.Category)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.ingredients.Create(ctx, ing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateIngredient overrides an ingredient's fields.
func (s *Service) UpdateIngredient(ctx context.Context, id uuid.UUID, input ports.IngredientInput) (*domain.Ingredient, error) {
	existing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	existing.Name = input.Name
	existing.Unit = input.Unit
	existing.CurrentStock = input.CurrentStock
	existing.MinStock = input.MinStock
	existing.CostPerUnit = input.CostPerUnit
	existing.Supplier = input.Supplier
	existing.Category = input.Category
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.ingredients.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetIngredient loads a single ingredient.
func (s *Service) GetIngredient(ctx context.Context, id uuid.UUID) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return ing, nil
}

// ListIngredients returns ingredients matching the filter.
func (s *Service) ListIngredients(ctx context.Context, filter ports.IngredientFilter) ([]*domain.Ingredient, error) {
	ingredients, err := s.ingredients.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return ingredients, nil
}

// DeleteIngredient removes an ingredient unless dishes still use it.
func (s *Service) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// AdjustStock applies a delta to an ingredient's current stock.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*domain.Ingredient, error) {
	existing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.AdjustStock(delta); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.ingredients.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// SetStock overwrites an ingredient's current stock with an absolute value.
func (s *Service) SetStock(ctx context.Context, id uuid.UUID, value decimal.Decimal) (*domain.Ingredient, error) {
	existing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.SetStock(value); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.ingredients.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// resolveBOM validates that every referenced ingredient exists and converts
// the payload lines into domain links.
func (s *Service) resolveBOM(ctx context.Context, lines []ports.DishIngredientInput) ([]domain.DishIngredient, error) {
	bom := make([]domain.DishIngredient, 0, len(lines))
	for _, line := range lines {
		if _, err := s.ingredients.GetByID(ctx, line.IngredientID); err != nil {
			return nil, err
		}
		bom = append(bom, domain.DishIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Notes:        line.Notes,
		})
	}
	return bom, nil
}

var _ ports.Service = (*Service)(nil)
