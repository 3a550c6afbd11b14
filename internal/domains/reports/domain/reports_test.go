package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

func TestWeekWindow_SundayToSaturday(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	start, end := WeekWindow(time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), end)

	// A Sunday stays put.
	start, _ = WeekWindow(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), start)
}

func TestFridayOf(t *testing.T) {
	friday := FridayOf(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
	require.Equal(t, time.Friday, friday.Weekday())
	require.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), friday)
}

func testOrder(customer uuid.UUID, name string, status orderdomain.Status, delivery time.Time, items ...orderdomain.Item) *orderdomain.Order {
	total := orderdomain.ComputeTotal(items)
	return &orderdomain.Order{
		ID:           uuid.New(),
		CustomerID:   customer,
		CustomerName: name,
		OrderDate:    delivery.AddDate(0, 0, -3),
		DeliveryDate: delivery,
		Status:       status,
		Items:        items,
		TotalAmount:  total,
	}
}

func item(dish uuid.UUID, name string, qty int, price float64) orderdomain.Item {
	return orderdomain.Item{
		ID:       uuid.New(),
		DishID:   dish,
		DishName: name,
		Quantity: qty,
		Price:    decimal.NewFromFloat(price),
	}
}

func TestSummarize_ExcludesCancelledFromRevenue(t *testing.T) {
	dana := uuid.New()
	noa := uuid.New()
	soup := uuid.New()
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	orders := []*orderdomain.Order{
		testOrder(dana, "Dana", orderdomain.StatusConfirmed, friday, item(soup, "Soup", 2, 24)),
		testOrder(noa, "Noa", orderdomain.StatusNew, friday, item(soup, "Soup", 1, 24)),
		testOrder(dana, "Dana", orderdomain.StatusCancelled, friday, item(soup, "Soup", 5, 24)),
	}

	summary := Summarize(orders, ByDeliveryDate)
	require.Equal(t, 3, summary.TotalOrders)
	require.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(72)))
	require.Equal(t, 2, summary.UniqueCustomers)
	require.True(t, summary.AverageOrderValue.Equal(decimal.NewFromInt(36)))
	// Cancelled orders still show in the status breakdown.
	require.Equal(t, 1, summary.ByStatus[orderdomain.StatusCancelled])
	require.Len(t, summary.ByDay, 1)
	require.Equal(t, 2, summary.ByDay[0].Count)
}

func TestSummarize_EmptySetHasZeroAverage(t *testing.T) {
	summary := Summarize(nil, ByDeliveryDate)
	require.Equal(t, 0, summary.TotalOrders)
	require.True(t, summary.AverageOrderValue.IsZero())
	require.True(t, summary.TotalRevenue.IsZero())
}

func TestTopDishes_OrderedByQuantityThenRevenue(t *testing.T) {
	soup := uuid.New()
	salad := uuid.New()
	pie := uuid.New()
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	customer := uuid.New()

	orders := []*orderdomain.Order{
		testOrder(customer, "Dana", orderdomain.StatusConfirmed, friday,
			item(soup, "Soup", 3, 10), item(salad, "Salad", 3, 20)),
		testOrder(customer, "Dana", orderdomain.StatusConfirmed, friday,
			item(pie, "Pie", 1, 50)),
		testOrder(customer, "Dana", orderdomain.StatusCancelled, friday,
			item(pie, "Pie", 99, 50)),
	}

	ranks := TopDishes(orders)
	require.Len(t, ranks, 3)
	// Salad and soup tie on quantity; salad wins on revenue.
	require.Equal(t, "Salad", ranks[0].Name)
	require.Equal(t, "Soup", ranks[1].Name)
	require.Equal(t, "Pie", ranks[2].Name)
	require.Equal(t, 1, ranks[2].Quantity)
}

func TestTopCustomers_RankedBySpendWithTopDishes(t *testing.T) {
	dana := uuid.New()
	noa := uuid.New()
	soup := uuid.New()
	salad := uuid.New()
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	orders := []*orderdomain.Order{
		testOrder(dana, "Dana", orderdomain.StatusConfirmed, friday,
			item(soup, "Soup", 1, 10)),
		testOrder(noa, "Noa", orderdomain.StatusConfirmed, friday,
			item(salad, "Salad", 2, 30), item(soup, "Soup", 1, 10)),
	}

	ranks := TopCustomers(orders)
	require.Len(t, ranks, 2)
	require.Equal(t, "Noa", ranks[0].Name)
	require.True(t, ranks[0].TotalSpent.Equal(decimal.NewFromInt(70)))
	require.Equal(t, []string{"Salad", "Soup"}, ranks[0].TopDishes)
	require.Equal(t, 1, ranks[1].Orders)
}

func TestRequirements_ExplodesBillOfMaterials(t *testing.T) {
	pumpkinID := uuid.New()
	creamID := uuid.New()
	soupID := uuid.New()
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	customer := uuid.New()

	dishes := map[uuid.UUID]*catalogdomain.Dish{
		soupID: {
			ID:   soupID,
			Name: "Pumpkin Soup",
			Ingredients: []catalogdomain.DishIngredient{
				{IngredientID: pumpkinID, Quantity: decimal.NewFromFloat(0.4)},
				{IngredientID: creamID, Quantity: decimal.NewFromFloat(0.1)},
			},
		},
	}
	ingredients := map[uuid.UUID]*catalogdomain.Ingredient{
		pumpkinID: {
			ID: pumpkinID, Name: "pumpkin", Unit: "kg",
			CurrentStock: decimal.NewFromFloat(0.5),
			MinStock:     decimal.NewFromFloat(1),
			CostPerUnit:  decimal.NewFromFloat(5),
		},
		creamID: {
			ID: creamID, Name: "cream", Unit: "l",
			CurrentStock: decimal.NewFromFloat(2),
			CostPerUnit:  decimal.NewFromFloat(8),
		},
	}
	orders := []*orderdomain.Order{
		testOrder(customer, "Dana", orderdomain.StatusConfirmed, friday,
			item(soupID, "Pumpkin Soup", 2, 24)),
		testOrder(customer, "Dana", orderdomain.StatusNew, friday,
			item(soupID, "Pumpkin Soup", 1, 24)),
		testOrder(customer, "Dana", orderdomain.StatusCancelled, friday,
			item(soupID, "Pumpkin Soup", 7, 24)),
	}

	reqs := Requirements(orders, dishes, ingredients)
	require.Len(t, reqs, 2)

	byName := map[string]IngredientRequirement{}
	for _, req := range reqs {
		byName[req.Name] = req
	}

	pumpkin := byName["pumpkin"]
	// 3 soups x 0.4 kg, the cancelled order does not count.
	require.True(t, pumpkin.Required.Equal(decimal.NewFromFloat(1.2)), "got %s", pumpkin.Required)
	require.True(t, pumpkin.NeedToBuy.Equal(decimal.NewFromFloat(0.7)))
	// Cost follows the full required quantity, not just the shortfall.
	require.True(t, pumpkin.EstimatedCost.Equal(decimal.NewFromFloat(6)))
	require.True(t, pumpkin.LowStock)
	require.Equal(t, 2, pumpkin.Orders)
	require.Len(t, pumpkin.Dishes, 1)

	cream := byName["cream"]
	require.True(t, cream.Required.Equal(decimal.NewFromFloat(0.3)))
	// Stock covers the demand; nothing to buy, but the line still costs.
	require.True(t, cream.NeedToBuy.IsZero())
	require.True(t, cream.EstimatedCost.Equal(decimal.NewFromFloat(2.4)))
}

func TestBuildShoppingList_GroupsAndFallbackLabels(t *testing.T) {
	reqs := []IngredientRequirement{
		{Name: "pumpkin", Category: "vegetables", Supplier: "Green Farm",
			NeedToBuy: decimal.NewFromFloat(1), EstimatedCost: decimal.NewFromFloat(5)},
		{Name: "cream", Category: "",
			NeedToBuy: decimal.NewFromFloat(2), EstimatedCost: decimal.NewFromFloat(16)},
		{Name: "salt", NeedToBuy: decimal.Zero, EstimatedCost: decimal.Zero},
	}

	list := BuildShoppingList(reqs, GroupByCategory)
	require.Equal(t, 3, list.Items)
	require.True(t, list.EstimatedCost.Equal(decimal.NewFromFloat(21)))
	require.Len(t, list.Groups, 2)
	require.Equal(t, "Uncategorized", list.Groups[0].Label)
	require.Equal(t, "vegetables", list.Groups[1].Label)
	// Fully-stocked ingredients stay on the list with a zero shortfall.
	require.Equal(t, "salt", list.Groups[0].Items[1].Name)
	require.True(t, list.Groups[0].Items[1].NeedToBuy.IsZero())

	bySupplier := BuildShoppingList(reqs, GroupBySupplier)
	require.Len(t, bySupplier.Groups, 2)
	require.Equal(t, "Green Farm", bySupplier.Groups[0].Label)
	require.Equal(t, "Unspecified", bySupplier.Groups[1].Label)
	require.Len(t, bySupplier.Groups[1].Items, 2)

	flat := BuildShoppingList(reqs, GroupByNone)
	require.Len(t, flat.Groups, 1)
	require.Equal(t, "All Items", flat.Groups[0].Label)
	require.Len(t, flat.Groups[0].Items, 3)
}

func TestParseGroupBy(t *testing.T) {
	require.Equal(t, GroupByCategory, ParseGroupBy("category"))
	require.Equal(t, GroupBySupplier, ParseGroupBy("supplier"))
	require.Equal(t, GroupByNone, ParseGroupBy(""))
	require.Equal(t, GroupByNone, ParseGroupBy("bogus"))
}
