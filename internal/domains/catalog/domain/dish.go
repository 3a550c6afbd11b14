package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDishName      = errors.New("dish name must not be empty")
	ErrInvalidPrice       = errors.New("dish price must be greater than zero")
	ErrInvalidBOMQuantity = errors.New("ingredient quantity per dish must be greater than zero")
)

// Dish is a catalog entry customers order from. Its price is snapshotted
// into order items at order-creation time; later price changes never affect
// past orders.
type Dish struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Available   bool
	Tags        []string
	Ingredients []DishIngredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DishIngredient links a dish to one ingredient of its bill of materials.
// Quantity is per single dish unit.
type DishIngredient struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Notes        string
}

// NewDish validates and constructs a dish.
func NewDish(name, description string, price decimal.Decimal, category string, available bool, tags []string, ingredients []DishIngredient) (*Dish, error) {
	dish := &Dish{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Category:    strings.TrimSpace(category),
		Available:   available,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := dish.Validate(); err != nil {
		return nil, err
	}
	return dish, nil
}

// Validate enforces invariants on the aggregate.
func (d *Dish) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyDishName
	}
	if !d.Price.IsPositive() {
		return ErrInvalidPrice
	}
	for _, ing := range d.Ingredients {
		if !ing.Quantity.IsPositive() {
			return ErrInvalidBOMQuantity
		}
	}
	return nil
}
