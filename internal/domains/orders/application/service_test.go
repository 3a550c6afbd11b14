package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/memory"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

type fakeDirectory struct {
	customers map[uuid.UUID]ports.CustomerSnapshot
}

func (d fakeDirectory) Lookup(_ context.Context, id uuid.UUID) (ports.CustomerSnapshot, error) {
	customer, ok := d.customers[id]
	if !ok {
		return ports.CustomerSnapshot{}, ports.ErrCustomerNotFound
	}
	return customer, nil
}

type fakeCatalog struct {
	dishes map[uuid.UUID]ports.DishInfo
}

func (c fakeCatalog) Lookup(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]ports.DishInfo, error) {
	out := map[uuid.UUID]ports.DishInfo{}
	for _, id := range ids {
		if dish, ok := c.dishes[id]; ok {
			out[id] = dish
		}
	}
	return out, nil
}

type fixture struct {
	svc        *Service
	repo       *ordermemory.Repository
	customerID uuid.UUID
	soupID     uuid.UUID
	saladID    uuid.UUID
}

func newFixture() fixture {
	repo := ordermemory.NewRepository()
	customerID := uuid.New()
	soupID := uuid.New()
	saladID := uuid.New()
	directory := fakeDirectory{customers: map[uuid.UUID]ports.CustomerSnapshot{
		customerID: {ID: customerID, Name: "Dana Levi", Phone: "0501234567", Address: "12 Herzl St"},
	}}
	catalog := fakeCatalog{dishes: map[uuid.UUID]ports.DishInfo{
		soupID:  {ID: soupID, Name: "Pumpkin Soup", Price: decimal.NewFromFloat(24.00)},
		saladID: {ID: saladID, Name: "Green Salad", Price: decimal.NewFromFloat(18.50)},
	}}
	return fixture{
		svc:        NewService(repo, directory, catalog),
		repo:       repo,
		customerID: customerID,
		soupID:     soupID,
		saladID:    saladID,
	}
}

func (f fixture) createOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID:   f.customerID,
		OrderDate:    time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Items: []ports.ItemInput{
			{DishID: f.soupID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrder_SnapshotsCustomerAndPrice(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	require.Equal(t, "Dana Levi", order.CustomerName)
	require.Equal(t, domain.StatusNew, order.Status)
	// No delivery address in the payload falls back to the customer's.
	require.Equal(t, "12 Herzl St", order.DeliveryAddress)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Pumpkin Soup", order.Items[0].DishName)
	require.True(t, order.Items[0].Price.Equal(decimal.NewFromFloat(24.00)))
	require.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(48.00)))
}

func TestCreateOrder_NumbersAreSequentialPerYear(t *testing.T) {
	f := newFixture()
	first := f.createOrder(t)
	second := f.createOrder(t)
	require.Equal(t, "ORD-2026-0001", first.Number)
	require.Equal(t, "ORD-2026-0002", second.Number)

	next, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID:   f.customerID,
		OrderDate:    time.Date(2027, 1, 3, 9, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2027, 1, 8, 0, 0, 0, 0, time.UTC),
		Items:        []ports.ItemInput{{DishID: f.saladID, Quantity: 1}},
	})
	require.NoError(t, err)
	// The sequence restarts at one for a new year.
	require.Equal(t, "ORD-2027-0001", next.Number)
}

func TestCreateOrder_RecordsCreationHistory(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	loaded, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.History, 1)
	require.Equal(t, domain.ActionCreated, loaded.History[0].Action)
	require.Equal(t, order.Number, loaded.History[0].Details["number"])
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID:   uuid.New(),
		DeliveryDate: time.Now(),
		Items:        []ports.ItemInput{{DishID: f.soupID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ports.ErrCustomerNotFound)
}

func TestCreateOrder_UnknownDish(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID:   f.customerID,
		DeliveryDate: time.Now(),
		Items:        []ports.ItemInput{{DishID: uuid.New(), Quantity: 1}},
	})
	require.ErrorIs(t, err, ports.ErrDishNotFound)
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID:   f.customerID,
		DeliveryDate: time.Now(),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateOrder_StatusTransition(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	confirmed := "CONFIRMED"
	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &confirmed})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.Status)

	var change *domain.HistoryEntry
	for i := range updated.History {
		if updated.History[i].Action == domain.ActionStatusChange {
			change = &updated.History[i]
		}
	}
	require.NotNil(t, change)
	require.Equal(t, "NEW", change.Details["from"])
	require.Equal(t, "CONFIRMED", change.Details["to"])
}

func TestUpdateOrder_RejectsIllegalTransition(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	ready := "READY"
	_, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &ready})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateOrder_SameStatusIsNoOp(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	same := "NEW"
	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Status: &same})
	require.NoError(t, err)
	require.Equal(t, domain.StatusNew, updated.Status)
	// Only the creation entry exists; no transition was logged.
	require.Len(t, updated.History, 1)
}

func TestUpdateOrder_NotesChangeLogsOneEntry(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	notes := "no coriander"
	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, notes, updated.Notes)

	var fieldChanges []domain.HistoryEntry
	for _, entry := range updated.History {
		if entry.Action == domain.ActionOrderUpdated {
			fieldChanges = append(fieldChanges, entry)
		}
	}
	require.Len(t, fieldChanges, 1)
	require.Equal(t, "notes", fieldChanges[0].Details["field"])
}

func TestUpdateOrder_ItemReplacementRecomputesTotal(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	price := decimal.NewFromFloat(10.00)
	items := []ports.ItemInput{
		{DishID: f.saladID, Quantity: 2, Price: &price},
	}
	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Items: &items})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	require.Equal(t, "Green Salad", updated.Items[0].DishName)
	require.True(t, updated.TotalAmount.Equal(decimal.NewFromFloat(20.00)))

	actions := map[domain.HistoryAction]int{}
	for _, entry := range updated.History {
		actions[entry.Action]++
	}
	require.Equal(t, 1, actions[domain.ActionItemRemoved])
	require.Equal(t, 1, actions[domain.ActionItemAdded])
}

func TestUpdateOrder_RetainedItemKeepsPriceSnapshot(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	items := []ports.ItemInput{
		{DishID: f.soupID, Quantity: 3},
	}
	updated, err := f.svc.UpdateOrder(context.Background(), order.ID, ports.UpdateOrderInput{Items: &items})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Items[0].Quantity)
	// The snapshot from creation time survives the quantity change.
	require.True(t, updated.Items[0].Price.Equal(order.Items[0].Price))
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture()
	order := f.createOrder(t)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), order.ID))
	_, err := f.svc.GetOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
