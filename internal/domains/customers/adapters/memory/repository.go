package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer

	// InUse reports whether orders still reference the customer. Left nil,
	// deletes are never blocked.
	InUse func(customerID uuid.UUID) bool
}

func NewRepository() *Repository {
	return &Repository{customers: map[uuid.UUID]*domain.Customer{}}
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Phone == customer.Phone {
			return nil, ports.ErrDuplicatePhone
		}
	}
	clone := cloneCustomer(customer)
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.customers[clone.ID] = clone
	return cloneCustomer(clone), nil
}

func (r *Repository) Update(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.customers[customer.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for id, other := range r.customers {
		if id != customer.ID && other.Phone == customer.Phone {
			return nil, ports.ErrDuplicatePhone
		}
	}
	clone := cloneCustomer(customer)
	clone.Preferences = existing.Preferences
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	r.customers[clone.ID] = clone
	return cloneCustomer(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

func (r *Repository) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, customer := range r.customers {
		if customer.Phone == phone {
			return cloneCustomer(customer), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*domain.Customer, 0, len(r.customers))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, customer := range r.customers {
		if search != "" &&
			!strings.Contains(strings.ToLower(customer.Name), search) &&
			!strings.Contains(customer.Phone, search) {
			continue
		}
		matched = append(matched, cloneCustomer(customer))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []*domain.Customer{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return ports.ErrNotFound
	}
	if r.InUse != nil && r.InUse(id) {
		return ports.ErrReferencedByOrders
	}
	delete(r.customers, id)
	return nil
}

func (r *Repository) AddPreference(_ context.Context, pref *domain.Preference) (*domain.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[pref.CustomerID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for _, existing := range customer.Preferences {
		if existing.Kind == pref.Kind && existing.Value == pref.Value {
			return nil, ports.ErrDuplicatePreference
		}
	}
	clone := *pref
	clone.CreatedAt = time.Now()
	customer.Preferences = append(customer.Preferences, clone)
	return &clone, nil
}

func (r *Repository) RemovePreference(_ context.Context, customerID, prefID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[customerID]
	if !ok {
		return ports.ErrNotFound
	}
	for i, pref := range customer.Preferences {
		if pref.ID == prefID {
			customer.Preferences = append(customer.Preferences[:i], customer.Preferences[i+1:]...)
			return nil
		}
	}
	return ports.ErrPreferenceNotFound
}

func cloneCustomer(customer *domain.Customer) *domain.Customer {
	clone := *customer
	clone.Preferences = append([]domain.Preference{}, customer.Preferences...)
	return &clone
}
