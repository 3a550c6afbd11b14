package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
)

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ingredient id %q", raw)
	}
	return id, nil
}

// DishIngredient is one bill-of-materials line on a dish payload or response.
type DishIngredient struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes,omitempty"`
}

// Dish is the HTTP representation of a dish.
type Dish struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category,omitempty"`
	Available   bool             `json:"available"`
	Tags        []string         `json:"tags"`
	Ingredients []DishIngredient `json:"ingredients"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MutationDish captures inbound payloads for dish create/update. Available
// defaults to true when omitted.
type MutationDish struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category"`
	Available   *bool            `json:"available,omitempty"`
	Tags        []string         `json:"tags"`
	Ingredients []DishIngredient `json:"ingredients"`
}

// Ingredient is the HTTP representation of an inventory ingredient.
type Ingredient struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	Supplier     string          `json:"supplier,omitempty"`
	Category     string          `json:"category,omitempty"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MutationIngredient captures inbound payloads for ingredient create/update.
type MutationIngredient struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	Supplier     string          `json:"supplier"`
	Category     string          `json:"category"`
}

// StockAdjustment carries either a relative delta or an absolute replacement
// value; exactly one should be set.
type StockAdjustment struct {
	Delta        *decimal.Decimal `json:"delta,omitempty"`
	CurrentStock *decimal.Decimal `json:"currentStock,omitempty"`
}

func ToDishInput(payload MutationDish) (ports.DishInput, error) {
	lines := make([]ports.DishIngredientInput, 0, len(payload.Ingredients))
	for _, line := range payload.Ingredients {
		id, err := parseUUID(line.IngredientID)
		if err != nil {
			return ports.DishInput{}, err
		}
		lines = append(lines, ports.DishIngredientInput{
			IngredientID: id,
			Quantity:     line.Quantity,
			Notes:        line.Notes,
		})
	}
	available := true
	if payload.Available != nil {
		available = *payload.Available
	}
	return ports.DishInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Available:   available,
		Tags:        payload.Tags,
		Ingredients: lines,
	}, nil
}

func ToIngredientInput(payload MutationIngredient) ports.IngredientInput {
	return ports.IngredientInput{
		Name:         payload.Name,
		Unit:         payload.Unit,
		CurrentStock: payload.CurrentStock,
		MinStock:     payload.MinStock,
		CostPerUnit:  payload.CostPerUnit,
		Supplier:     payload.Supplier,
		Category:     payload.Category,
	}
}

func FromDish(dish *domain.Dish) Dish {
	lines := make([]DishIngredient, 0, len(dish.Ingredients))
	for _, line := range dish.Ingredients {
		lines = append(lines, DishIngredient{
			IngredientID: line.IngredientID.String(),
			Quantity:     line.Quantity,
			Notes:        line.Notes,
		})
	}
	tags := dish.Tags
	if tags == nil {
		tags = []string{}
	}
	return Dish{
		ID:          dish.ID.String(),
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		Category:    dish.Category,
		Available:   dish.Available,
		Tags:        tags,
		Ingredients: lines,
		CreatedAt:   dish.CreatedAt,
		UpdatedAt:   dish.UpdatedAt,
	}
}

func FromDishList(dishes []*domain.Dish) []Dish {
	out := make([]Dish, 0, len(dishes))
	for _, dish := range dishes {
		out = append(out, FromDish(dish))
	}
	return out
}

func FromIngredient(ing *domain.Ingredient) Ingredient {
	return Ingredient{
		ID:           ing.ID.String(),
		Name:         ing.Name,
		Unit:         ing.Unit,
		CurrentStock: ing.CurrentStock,
		MinStock:     ing.MinStock,
		CostPerUnit:  ing.CostPerUnit,
		Supplier:     ing.Supplier,
		Category:     ing.Category,
		LowStock:     ing.LowStock(),
		CreatedAt:    ing.CreatedAt,
		UpdatedAt:    ing.UpdatedAt,
	}
}

func FromIngredientList(ingredients []*domain.Ingredient) []Ingredient {
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, FromIngredient(ing))
	}
	return out
}
