package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

var (
	ErrCustomerNotFound = errors.New("order customer not found")
	ErrDishNotFound     = errors.New("order references an unknown dish")
)

// CustomerSnapshot is the denormalized customer view captured on an order.
type CustomerSnapshot struct {
	ID      uuid.UUID
	Name    string
	Phone   string
	Email   string
	Address string
}

// DishInfo is the catalog view the orders context needs for snapshots.
type DishInfo struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// CustomerDirectory resolves customers from the customers context.
type CustomerDirectory interface {
	Lookup(ctx context.Context, id uuid.UUID) (CustomerSnapshot, error)
}

// DishCatalog resolves dishes from the catalog context.
type DishCatalog interface {
	Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]DishInfo, error)
}

// ItemInput is one dish line on an order payload. A nil Price means
// "snapshot the dish's current catalog price" for new lines, or "keep the
// existing snapshot" for retained lines.
type ItemInput struct {
	DishID   uuid.UUID
	Quantity int
	Price    *decimal.Decimal
	Notes    string
}

// CreateOrderInput carries the fields accepted on order creation.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	OrderDate       time.Time
	DeliveryDate    time.Time
	DeliveryAddress string
	Notes           string
	Items           []ItemInput
}

// UpdateOrderInput is a partial update; nil fields are left untouched and a
// non-nil Items slice is a full replacement of the order's item list.
type UpdateOrderInput struct {
	Status          *string
	DeliveryDate    *time.Time
	DeliveryAddress *string
	Notes           *string
	Items           *[]ItemInput
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
