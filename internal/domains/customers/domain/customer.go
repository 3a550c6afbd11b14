package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// PreferenceKind classifies a customer preference entry.
type PreferenceKind string

const (
	KindAllergy            PreferenceKind = "allergy"
	KindDietaryRestriction PreferenceKind = "dietary_restriction"
	KindPreference         PreferenceKind = "preference"
	KindMedical            PreferenceKind = "medical"
)

var (
	ErrEmptyName            = errors.New("customer name must not be empty")
	ErrInvalidPhone         = errors.New("customer phone must contain at least one digit")
	ErrInvalidKind          = errors.New("preference kind is invalid")
	ErrEmptyPreferenceValue = errors.New("preference value must not be empty")
)

// Customer is the canonical customer aggregate. Phone is stored in its
// canonical digit-only form.
type Customer struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	Email       string
	Address     string
	Notes       string
	Preferences []Preference
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Preference belongs to exactly one customer. (CustomerID, Kind, Value)
// is unique per customer.
type Preference struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Kind       PreferenceKind
	Value      string
	Notes      string
	CreatedAt  time.Time
}

// NewCustomer validates and constructs a customer with a normalized phone.
func NewCustomer(name, phone, email, address, notes string) (*Customer, error) {
	canonical, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	c := &Customer{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(name),
		Phone:   canonical,
		Email:   strings.TrimSpace(email),
		Address: strings.TrimSpace(address),
		Notes:   notes,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces invariants on the aggregate.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Phone == "" {
		return ErrInvalidPhone
	}
	return nil
}

// NormalizePhone strips every non-digit rune so that formatted variants of
// the same number ("050-1234567", "0501234567") collapse to one canonical
// stored value.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", ErrInvalidPhone
	}
	return b.String(), nil
}

// NewPreference validates and constructs a preference entry.
func NewPreference(customerID uuid.UUID, kind PreferenceKind, value, notes string) (*Preference, error) {
	parsed, err := ParsePreferenceKind(string(kind))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, ErrEmptyPreferenceValue
	}
	return &Preference{
		ID:         uuid.New(),
		CustomerID: customerID,
		Kind:       parsed,
		Value:      strings.TrimSpace(value),
		Notes:      notes,
	}, nil
}

// ParsePreferenceKind accepts kinds case-insensitively.
func ParsePreferenceKind(raw string) (PreferenceKind, error) {
	switch PreferenceKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindAllergy:
		return KindAllergy, nil
	case KindDietaryRestriction:
		return KindDietaryRestriction, nil
	case KindPreference:
		return KindPreference, nil
	case KindMedical:
		return KindMedical, nil
	default:
		return "", ErrInvalidKind
	}
}
