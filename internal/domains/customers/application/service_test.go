package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	customermemory "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/adapters/memory"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
)

func TestCreateCustomer_NormalizesPhone(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "050-123-4567",
	})
	require.NoError(t, err)
	require.Equal(t, "0501234567", customer.Phone)
}

func TestCreateCustomer_DuplicateCanonicalPhone(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	// Same digits, different formatting.
	_, err = svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Someone Else",
		Phone: "050-1234567",
	})
	require.ErrorIs(t, err, ports.ErrDuplicatePhone)
}

func TestCreateCustomer_RejectsInvalidInput(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{Phone: "0501234567"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{Name: "Dana", Phone: "---"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCustomer_PartialFields(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:    "Dana Levi",
		Phone:   "0501234567",
		Address: "12 Herzl St",
	})
	require.NoError(t, err)

	notes := "prefers Friday morning delivery"
	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, ports.UpdateCustomerInput{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, notes, updated.Notes)
	// Untouched fields survive.
	require.Equal(t, customer.Name, updated.Name)
	require.Equal(t, customer.Address, updated.Address)
}

func TestAddPreference_ValidatesKind(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	pref, err := svc.AddPreference(context.Background(), customer.ID, ports.PreferenceInput{
		Kind:  "Allergy",
		Value: "peanuts",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindAllergy, pref.Kind)

	_, err = svc.AddPreference(context.Background(), customer.ID, ports.PreferenceInput{
		Kind:  "superstition",
		Value: "no table 13",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddPreference_RejectsDuplicate(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	input := ports.PreferenceInput{Kind: "allergy", Value: "peanuts"}
	_, err = svc.AddPreference(context.Background(), customer.ID, input)
	require.NoError(t, err)
	_, err = svc.AddPreference(context.Background(), customer.ID, input)
	require.ErrorIs(t, err, ports.ErrDuplicatePreference)
}

func TestListPreferences(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	_, err = svc.AddPreference(context.Background(), customer.ID, ports.PreferenceInput{Kind: "allergy", Value: "peanuts"})
	require.NoError(t, err)
	_, err = svc.AddPreference(context.Background(), customer.ID, ports.PreferenceInput{Kind: "dietary_restriction", Value: "vegetarian"})
	require.NoError(t, err)

	prefs, err := svc.ListPreferences(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	_, err = svc.ListPreferences(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemovePreference(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	pref, err := svc.AddPreference(context.Background(), customer.ID, ports.PreferenceInput{
		Kind:  "dietary_restriction",
		Value: "vegetarian",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemovePreference(context.Background(), customer.ID, pref.ID))
	require.ErrorIs(t,
		svc.RemovePreference(context.Background(), customer.ID, pref.ID),
		ports.ErrPreferenceNotFound)
}

func TestDeleteCustomer_GuardedByOrders(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)
	customer, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		Name:  "Dana Levi",
		Phone: "0501234567",
	})
	require.NoError(t, err)

	repo.InUse = func(id uuid.UUID) bool { return id == customer.ID }
	require.ErrorIs(t, svc.DeleteCustomer(context.Background(), customer.ID), ports.ErrReferencedByOrders)

	repo.InUse = nil
	require.NoError(t, svc.DeleteCustomer(context.Background(), customer.ID))
	_, err = svc.GetCustomer(context.Background(), customer.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListCustomers_SearchAndPaging(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	names := []string{"Dana Levi", "Noa Mizrahi", "Dana Cohen"}
	for i, name := range names {
		_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
			Name:  name,
			Phone: "05012345" + string(rune('0'+i)) + "0",
		})
		require.NoError(t, err)
	}

	customers, total, err := svc.ListCustomers(context.Background(), ports.ListFilter{Search: "dana"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, customers, 2)

	page, total, err := svc.ListCustomers(context.Background(), ports.ListFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 1)
}
