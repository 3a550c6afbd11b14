package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/domain"
)

// WeeklySummary is the full weekly report: order statistics, rankings, and
// the exploded ingredient requirements for the week's deliveries.
type WeeklySummary struct {
	WeekStart    time.Time
	WeekEnd      time.Time
	DeliveryDay  time.Time
	Summary      domain.Summary
	TopDishes    []domain.DishRank
	TopCustomers []domain.CustomerRank
	Ingredients  []domain.IngredientRequirement
	// Orders are the week's deliveries, previewed for the report.
	Orders []DeliveryPreview
}

// ShoppingListReport is the purchasable shortfall for a week, grouped on
// request.
type ShoppingListReport struct {
	WeekStart time.Time
	WeekEnd   time.Time
	GroupBy   domain.GroupBy
	List      domain.ShoppingList
	// OrderCount is how many non-cancelled orders drive the list.
	OrderCount int
}

// DeliveryPreview is one order due for delivery on the dashboard day.
type DeliveryPreview struct {
	OrderID     string
	Number      string
	Customer    string
	Status      string
	Items       int
	TotalAmount decimal.Decimal
}

// Dashboard is the at-a-glance daily view: the day's intake, the day's
// deliveries, and inventory pressure.
type Dashboard struct {
	Date       time.Time
	Today      domain.Summary
	Deliveries []DeliveryPreview
	LowStock   int
}

// Service computes reports over the order, dish, and inventory data.
type Service interface {
	// WeeklySummary reports on the calendar week containing weekOf,
	// bucketed by delivery date.
	WeeklySummary(ctx context.Context, weekOf time.Time) (*WeeklySummary, error)
	// ShoppingList reports what must be bought to cook the week
	// containing weekOf.
	ShoppingList(ctx context.Context, weekOf time.Time, groupBy domain.GroupBy) (*ShoppingListReport, error)
	// Dashboard reports on a single day, bucketed by order date.
	Dashboard(ctx context.Context, day time.Time) (*Dashboard, error)
}
