package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
)

// HistoryLimit caps how many history entries are returned with an order,
// newest first.
const HistoryLimit = 50

// ListFilter narrows and pages order listings.
type ListFilter struct {
	Status       *domain.Status
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time
	// Search matches order number, snapshotted customer name, or phone.
	Search string
	Page   int
	Limit  int
}

// Repository persists orders, their items, and their history log.
type Repository interface {
	// Create assigns the yearly order number atomically and persists the
	// order, its items, and initial history in one transaction.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByID loads an order with items and the newest HistoryLimit history
	// entries, newest first.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
	// ListByDeliveryRange returns all orders (with items) whose delivery
	// date falls inside [from, to), for reporting.
	ListByDeliveryRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	// ListByOrderDateRange is the same over the creation date, for the
	// daily dashboard.
	ListByOrderDateRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	// ApplyUpdate persists the mutated order state, replaces its item set,
	// and appends the given history entries as one all-or-nothing unit.
	ApplyUpdate(ctx context.Context, order *domain.Order, entries []domain.HistoryEntry) (*domain.Order, error)
	// Delete removes an order with its items and history.
	Delete(ctx context.Context, id uuid.UUID) error
}
