package mapper

import (
	"time"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
)

// Preference is the HTTP representation of a customer preference.
type Preference struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email,omitempty"`
	Address     string       `json:"address,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Preferences []Preference `json:"preferences"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateCustomer captures inbound payloads for customer creation.
type CreateCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateCustomer captures partial updates while preserving field presence.
type UpdateCustomer struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// CreatePreference captures inbound payloads for attaching a preference.
type CreatePreference struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Notes string `json:"notes"`
}

// CustomerPage wraps a customer listing with paging metadata.
type CustomerPage struct {
	Customers []Customer `json:"customers"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

func ToCreateInput(payload CreateCustomer) ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Address: payload.Address,
		Notes:   payload.Notes,
	}
}

func ToUpdateInput(payload UpdateCustomer) ports.UpdateCustomerInput {
	return ports.UpdateCustomerInput{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Email:   payload.Email,
		Address: payload.Address,
		Notes:   payload.Notes,
	}
}

func ToPreferenceInput(payload CreatePreference) ports.PreferenceInput {
	return ports.PreferenceInput{
		Kind:  payload.Kind,
		Value: payload.Value,
		Notes: payload.Notes,
	}
}

func FromCustomer(customer *domain.Customer) Customer {
	prefs := make([]Preference, 0, len(customer.Preferences))
	for _, pref := range customer.Preferences {
		prefs = append(prefs, FromPreference(pref))
	}
	return Customer{
		ID:          customer.ID.String(),
		Name:        customer.Name,
		Phone:       customer.Phone,
		Email:       customer.Email,
		Address:     customer.Address,
		Notes:       customer.Notes,
		Preferences: prefs,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

func FromPreference(pref domain.Preference) Preference {
	return Preference{
		ID:        pref.ID.String(),
		Kind:      string(pref.Kind),
		Value:     pref.Value,
		Notes:     pref.Notes,
		CreatedAt: pref.CreatedAt,
	}
}

func FromCustomerList(customers []*domain.Customer, total int64, page, limit int) CustomerPage {
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		out = append(out, FromCustomer(customer))
	}
	return CustomerPage{Customers: out, Total: total, Page: page, Limit: limit}
}
