package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
)

var (
	_ ports.DishRepository       = (*DishRepository)(nil)
	_ ports.IngredientRepository = (*IngredientRepository)(nil)
)

// DishRepository is an in-memory dish persistence adapter.
type DishRepository struct {
	mu     sync.RWMutex
	dishes map[uuid.UUID]*domain.Dish

	// InUse reports whether order items still reference the dish.
	InUse func(dishID uuid.UUID) bool
}

func NewDishRepository() *DishRepository {
	return &DishRepository{dishes: map[uuid.UUID]*domain.Dish{}}
}

func (r *DishRepository) Create(_ context.Context, dish *domain.Dish) (*domain.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneDish(dish)
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.dishes[clone.ID] = clone
	return cloneDish(clone), nil
}

func (r *DishRepository) Update(_ context.Context, dish *domain.Dish) (*domain.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.dishes[dish.ID]
	if !ok {
		return nil, ports.ErrDishNotFound
	}
	clone := cloneDish(dish)
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.dishes[clone.ID] = clone
	return cloneDish(clone), nil
}

func (r *DishRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dish, ok := r.dishes[id]
	if !ok {
		return nil, ports.ErrDishNotFound
	}
	return cloneDish(dish), nil
}

func (r *DishRepository) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[uuid.UUID]*domain.Dish, len(ids))
	for _, id := range ids {
		if dish, ok := r.dishes[id]; ok {
			result[id] = cloneDish(dish)
		}
	}
	return result, nil
}

func (r *DishRepository) List(_ context.Context, filter ports.DishFilter) ([]*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*domain.Dish, 0, len(r.dishes))
	for _, dish := range r.dishes {
		if filter.Category != "" && dish.Category != filter.Category {
			continue
		}
		if filter.AvailableOnly && !dish.Available {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(dish.Name), search) {
			continue
		}
		matched = append(matched, cloneDish(dish))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *DishRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dishes[id]; !ok {
		return ports.ErrDishNotFound
	}
	if r.InUse != nil && r.InUse(id) {
		return ports.ErrDishReferencedByOrders
	}
	delete(r.dishes, id)
	return nil
}

// UsesIngredient reports whether any dish bill of materials references the
// ingredient. Used as the ingredient repository's InUse guard.
func (r *DishRepository) UsesIngredient(ingredientID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, dish := range r.dishes {
		for _, line := range dish.Ingredients {
			if line.IngredientID == ingredientID {
				return true
			}
		}
	}
	return false
}

// IngredientRepository is an in-memory ingredient persistence adapter.
type IngredientRepository struct {
	mu          sync.RWMutex
	ingredients map[uuid.UUID]*domain.Ingredient

	// InUse reports whether a dish bill of materials references the ingredient.
	InUse func(ingredientID uuid.UUID) bool
}

func NewIngredientRepository() *IngredientRepository {
	return &IngredientRepository{ingredients: map[uuid.UUID]*domain.Ingredient{}}
}

func (r *IngredientRepository) Create(_ context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ingredients {
		if strings.EqualFold(existing.Name, ing.Name) {
			return nil, ports.ErrDuplicateIngredientName
		}
	}
	clone := *ing
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.ingredients[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *IngredientRepository) Update(_ context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.ingredients[ing.ID]
	if !ok {
		return nil, ports.ErrIngredientNotFound
	}
	for id, other := range r.ingredients {
		if id != ing.ID && strings.EqualFold(other.Name, ing.Name) {
			return nil, ports.ErrDuplicateIngredientName
		}
	}
	clone := *ing
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.ingredients[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *IngredientRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, ports.ErrIngredientNotFound
	}
	clone := *ing
	return &clone, nil
}

func (r *IngredientRepository) List(_ context.Context, filter ports.IngredientFilter) ([]*domain.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*domain.Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		if filter.Category != "" && ing.Category != filter.Category {
			continue
		}
		if filter.Supplier != "" && ing.Supplier != filter.Supplier {
			continue
		}
		if filter.LowStockOnly && !ing.LowStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ing.Name), search) {
			continue
		}
		clone := *ing
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *IngredientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ingredients[id]; !ok {
		return ports.ErrIngredientNotFound
	}
	if r.InUse != nil && r.InUse(id) {
		return ports.ErrIngredientInUse
	}
	delete(r.ingredients, id)
	return nil
}

func cloneDish(dish *domain.Dish) *domain.Dish {
	clone := *dish
	clone.Tags = append([]string{}, dish.Tags...)
	clone.Ingredients = append([]domain.DishIngredient{}, dish.Ingredients...)
	return &clone
}
