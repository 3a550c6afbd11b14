package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. The yearly number
// counter is guarded by the repository mutex, giving the same atomic
// read-modify-write guarantee the SQL upsert provides.
type Repository struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*domain.Order
	counters map[int]int
}

func NewRepository() *Repository {
	return &Repository{
		orders:   map[uuid.UUID]*domain.Order{},
		counters: map[int]int{},
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	year := order.OrderDate.Year()
	if order.OrderDate.IsZero() {
		year = time.Now().Year()
	}
	r.counters[year]++
	clone := cloneOrder(order)
	clone.Number = domain.FormatNumber(year, r.counters[year])

	created := domain.CreatedEntry(clone)
	created.CreatedAt = time.Now()
	clone.History = []domain.HistoryEntry{created}
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = clone
	return r.snapshot(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.snapshot(order), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.DeliveryFrom != nil && order.DeliveryDate.Before(*filter.DeliveryFrom) {
			continue
		}
		if filter.DeliveryTo != nil && !order.DeliveryDate.Before(*filter.DeliveryTo) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(order.Number), search) &&
			!strings.Contains(strings.ToLower(order.CustomerName), search) &&
			!strings.Contains(order.CustomerPhone, search) {
			continue
		}
		matched = append(matched, r.snapshot(order))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *Repository) ListByDeliveryRange(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.DeliveryDate.Before(from) || !order.DeliveryDate.Before(to) {
			continue
		}
		matched = append(matched, r.snapshot(order))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DeliveryDate.Before(matched[j].DeliveryDate)
	})
	return matched, nil
}

func (r *Repository) ListByOrderDateRange(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.OrderDate.Before(from) || !order.OrderDate.Before(to) {
			continue
		}
		matched = append(matched, r.snapshot(order))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderDate.Before(matched[j].OrderDate)
	})
	return matched, nil
}

func (r *Repository) ApplyUpdate(_ context.Context, order *domain.Order, entries []domain.HistoryEntry) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	clone.Number = existing.Number
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	clone.History = existing.History
	now := time.Now()
	for i, entry := range entries {
		// Preserve entry order under the newest-first sort.
		entry.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		clone.History = append(clone.History, entry)
	}
	r.orders[clone.ID] = clone
	return r.snapshot(clone), nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// HasOrdersFor reports whether any order references the customer. Used as
// the customers memory adapter delete guard.
func (r *Repository) HasOrdersFor(customerID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			return true
		}
	}
	return false
}

// HasItemsFor reports whether any order item references the dish. Used as
// the catalog memory adapter delete guard.
func (r *Repository) HasItemsFor(dishID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		for _, item := range order.Items {
			if item.DishID == dishID {
				return true
			}
		}
	}
	return false
}

// snapshot clones an order and trims history to the newest entries first.
func (r *Repository) snapshot(order *domain.Order) *domain.Order {
	clone := cloneOrder(order)
	history := append([]domain.HistoryEntry{}, order.History...)
	sort.Slice(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	if len(history) > ports.HistoryLimit {
		history = history[:ports.HistoryLimit]
	}
	clone.History = history
	return clone
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.Item{}, order.Items...)
	clone.History = append([]domain.HistoryEntry{}, order.History...)
	return &clone
}
