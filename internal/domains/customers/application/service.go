package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
)

// Service orchestrates the customers bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the customers service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer validates input, normalizes the phone, and persists a new
// customer. A customer with the same canonical phone is rejected.
func (s *Service) CreateCustomer(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(input.Name, input.Phone, input.Email, input.Address, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateCustomer applies a partial update to an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Phone != nil {
		canonical, err := domain.NormalizePhone(*input.Phone)
		if err != nil {
			return nil, mapError(err)
		}
		existing.Phone = canonical
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Address != nil {
		existing.Address = *input.Address
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetCustomer loads a customer with its preferences.
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

// ListCustomers returns a filtered, paged customer list and the total count.
func (s *Service) ListCustomers(ctx context.Context, filter ports.ListFilter) ([]*domain.Customer, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return customers, total, nil
}

// DeleteCustomer removes a customer. Customers referenced by orders cannot
// be deleted.
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// AddPreference attaches a preference entry; duplicates of
// (kind, value) per customer are rejected.
func (s *Service) AddPreference(ctx context.Context, customerID uuid.UUID, input ports.PreferenceInput) (*domain.Preference, error) {
	if _, err := s.repo.GetByID(ctx, customerID); err != nil {
		return nil, mapError(err)
	}
	pref, err := domain.NewPreference(customerID, domain.PreferenceKind(input.Kind), input.Value, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.AddPreference(ctx, pref)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RemovePreference detaches a preference entry from a customer.
func (s *Service) RemovePreference(ctx context.Context, customerID, prefID uuid.UUID) error {
	if err := s.repo.RemovePreference(ctx, customerID, prefID); err != nil {
		return mapError(err)
	}
	return nil
}

// ListPreferences returns a customer's preference entries.
func (s *Service) ListPreferences(ctx context.Context, customerID uuid.UUID) ([]domain.Preference, error) {
	customer, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, mapError(err)
	}
	return customer.Preferences, nil
}

var _ ports.Service = (*Service)(nil)
