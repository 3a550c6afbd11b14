package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyIngredientName = errors.New("ingredient name must not be empty")
	ErrEmptyUnit           = errors.New("ingredient unit must not be empty")
	ErrNegativeStock       = errors.New("ingredient stock must not be negative")
)

// Ingredient is an inventory item dishes are made of. Stock, threshold,
// and cost fields are optional; absent values are treated as zero.
type Ingredient struct {
	ID           uuid.UUID
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	CostPerUnit  decimal.Decimal
	Supplier     string
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewIngredient validates and constructs an ingredient.
func NewIngredient(name, unit string, currentStock, minStock, costPerUnit decimal.Decimal, supplier, category string) (*Ingredient, error) {
	ing := &Ingredient{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Unit:         strings.TrimSpace(unit),
		CurrentStock: currentStock,
		MinStock:     minStock,
		CostPerUnit:  costPerUnit,
		Supplier:     strings.TrimSpace(supplier),
		Category:     strings.TrimSpace(category),
	}
	if err := ing.Validate(); err != nil {
		return nil, err
	}
	return ing, nil
}

// Validate enforces invariants on the aggregate.
func (i *Ingredient) Validate() error {
	if i.Name == "" {
		return ErrEmptyIngredientName
	}
	if i.Unit == "" {
		return ErrEmptyUnit
	}
	if i.CurrentStock.IsNegative() || i.MinStock.IsNegative() {
		return ErrNegativeStock
	}
	return nil
}

// LowStock reports whether current stock fell below the minimum threshold.
// Unset values count as zero, so an ingredient with a threshold but no
// recorded stock reads as low.
func (i *Ingredient) LowStock() bool {
	return i.CurrentStock.LessThan(i.MinStock)
}

// AdjustStock adds a (possibly negative) delta to current stock.
func (i *Ingredient) AdjustStock(delta decimal.Decimal) error {
	next := i.CurrentStock.Add(delta)
	if next.IsNegative() {
		return ErrNegativeStock
	}
	i.CurrentStock = next
	return nil
}

// SetStock replaces current stock with an absolute value.
func (i *Ingredient) SetStock(value decimal.Decimal) error {
	if value.IsNegative() {
		return ErrNegativeStock
	}
	i.CurrentStock = value
	return nil
}
