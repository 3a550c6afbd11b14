package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	ordermemory "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/adapters/memory"
	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/domain"
)

type reportFixture struct {
	svc        *Service
	orders     *ordermemory.Repository
	soupID     uuid.UUID
	pumpkinID  uuid.UUID
	customerID uuid.UUID
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	ctx := context.Background()

	dishes := catalogmemory.NewDishRepository()
	ingredients := catalogmemory.NewIngredientRepository()
	orders := ordermemory.NewRepository()

	pumpkin, err := catalogdomain.NewIngredient("pumpkin", "kg",
		decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(5),
		"Green Farm", "vegetables")
	require.NoError(t, err)
	_, err = ingredients.Create(ctx, pumpkin)
	require.NoError(t, err)

	soup, err := catalogdomain.NewDish("Pumpkin Soup", "", decimal.NewFromInt(24),
		"soups", true, nil, []catalogdomain.DishIngredient{
			{IngredientID: pumpkin.ID, Quantity: decimal.NewFromFloat(0.5)},
		})
	require.NoError(t, err)
	_, err = dishes.Create(ctx, soup)
	require.NoError(t, err)

	return &reportFixture{
		svc:        NewService(orders, dishes, ingredients),
		orders:     orders,
		soupID:     soup.ID,
		pumpkinID:  pumpkin.ID,
		customerID: uuid.New(),
	}
}

func (f *reportFixture) placeOrder(t *testing.T, orderDate, delivery time.Time, qty int, status orderdomain.Status) {
	t.Helper()
	order := &orderdomain.Order{
		ID:           uuid.New(),
		CustomerID:   f.customerID,
		CustomerName: "Dana Levi",
		OrderDate:    orderDate,
		DeliveryDate: delivery,
		Status:       status,
		Items: []orderdomain.Item{{
			ID:       uuid.New(),
			DishID:   f.soupID,
			DishName: "Pumpkin Soup",
			Quantity: qty,
			Price:    decimal.NewFromInt(24),
		}},
	}
	order.TotalAmount = orderdomain.ComputeTotal(order.Items)
	_, err := f.orders.Create(context.Background(), order)
	require.NoError(t, err)
}

func TestWeeklySummary_WindowAndRequirements(t *testing.T) {
	f := newReportFixture(t)
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	f.placeOrder(t, monday, friday, 2, orderdomain.StatusConfirmed)
	f.placeOrder(t, monday, friday, 1, orderdomain.StatusNew)
	// Next week's order must stay outside the window.
	f.placeOrder(t, monday, friday.AddDate(0, 0, 7), 9, orderdomain.StatusNew)

	report, err := f.svc.WeeklySummary(context.Background(), monday)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), report.WeekStart)
	require.Equal(t, friday, report.DeliveryDay)
	require.Equal(t, 2, report.Summary.TotalOrders)
	require.True(t, report.Summary.TotalRevenue.Equal(decimal.NewFromInt(72)))
	require.Len(t, report.TopDishes, 1)
	require.Equal(t, 3, report.TopDishes[0].Quantity)
	require.Len(t, report.Orders, 2)

	require.Len(t, report.Ingredients, 1)
	pumpkin := report.Ingredients[0]
	// 3 soups x 0.5 kg against 1 kg in stock.
	require.True(t, pumpkin.Required.Equal(decimal.NewFromFloat(1.5)))
	require.True(t, pumpkin.NeedToBuy.Equal(decimal.NewFromFloat(0.5)))
	require.True(t, pumpkin.LowStock)
}

func TestShoppingList_GroupedBySupplier(t *testing.T) {
	f := newReportFixture(t)
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	f.placeOrder(t, monday, friday, 4, orderdomain.StatusConfirmed)

	report, err := f.svc.ShoppingList(context.Background(), monday, domain.GroupBySupplier)
	require.NoError(t, err)
	require.Equal(t, domain.GroupBySupplier, report.GroupBy)
	require.Equal(t, 1, report.OrderCount)
	require.Equal(t, 1, report.List.Items)
	require.Len(t, report.List.Groups, 1)
	require.Equal(t, "Green Farm", report.List.Groups[0].Label)
	// 4 x 0.5 kg needed at 5 per kg; stock 1 kg leaves 1 kg to buy.
	require.True(t, report.List.Groups[0].Items[0].NeedToBuy.Equal(decimal.NewFromInt(1)))
	require.True(t, report.List.EstimatedCost.Equal(decimal.NewFromInt(10)))
}

func TestDashboard_CountsPlacedAndDue(t *testing.T) {
	f := newReportFixture(t)
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// Placed today, delivered next week.
	f.placeOrder(t, today, today.AddDate(0, 0, 7), 1, orderdomain.StatusNew)
	// Placed earlier, due today.
	f.placeOrder(t, today.AddDate(0, 0, -3), today, 2, orderdomain.StatusReady)
	// Cancelled delivery still previews, but today's stats skip it.
	f.placeOrder(t, today, today, 1, orderdomain.StatusCancelled)

	dash, err := f.svc.Dashboard(context.Background(), today)
	require.NoError(t, err)
	require.Equal(t, today, dash.Date)
	require.Equal(t, 2, dash.Today.TotalOrders)
	require.True(t, dash.Today.TotalRevenue.Equal(decimal.NewFromInt(24)))
	require.Len(t, dash.Deliveries, 2)
	// The pumpkin stock sits below its minimum.
	require.Equal(t, 1, dash.LowStock)
}

func TestWeeklySummary_EmptyWeek(t *testing.T) {
	f := newReportFixture(t)
	report, err := f.svc.WeeklySummary(context.Background(), time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 0, report.Summary.TotalOrders)
	require.True(t, report.Summary.AverageOrderValue.IsZero())
	require.Empty(t, report.Ingredients)
	require.Empty(t, report.TopCustomers)
}
