package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
)

var (
	ErrNotFound            = errors.New("customer not found")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrDuplicatePhone      = errors.New("phone number already registered")
	ErrDuplicatePreference = errors.New("preference already recorded for customer")
	ErrReferencedByOrders  = errors.New("customer is referenced by orders")
)

// ListFilter narrows and pages customer listings.
type ListFilter struct {
	// Search matches against name or canonical phone, case-insensitively.
	Search string
	Page   int
	Limit  int
}

// Repository persists customers and their preferences.
type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Customer, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddPreference(ctx context.Context, pref *domain.Preference) (*domain.Preference, error)
	RemovePreference(ctx context.Context, customerID, prefID uuid.UUID) error
}
