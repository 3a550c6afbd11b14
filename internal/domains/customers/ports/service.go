package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
)

// CreateCustomerInput carries the fields accepted on customer creation.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// UpdateCustomerInput carries a partial customer update; nil fields are
// left untouched.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// PreferenceInput carries a preference to attach to a customer.
type PreferenceInput struct {
	Kind  string
	Value string
	Notes string
}

// Service exposes customer use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*domain.Customer, int64, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	AddPreference(ctx context.Context, customerID uuid.UUID, input PreferenceInput) (*domain.Preference, error)
	RemovePreference(ctx context.Context, customerID, prefID uuid.UUID) error
	ListPreferences(ctx context.Context, customerID uuid.UUID) ([]domain.Preference, error)
}
