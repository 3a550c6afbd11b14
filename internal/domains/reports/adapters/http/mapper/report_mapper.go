package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/ports"
)

const dateLayout = "2006-01-02"

// DaySummary is one per-day bucket of a report window.
type DaySummary struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summary is the HTTP representation of window statistics.
type Summary struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	UniqueCustomers   int             `json:"uniqueCustomers"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	ByStatus          map[string]int  `json:"byStatus"`
	ByDay             []DaySummary    `json:"byDay"`
}

// DishRank is one entry of the dish popularity ranking.
type DishRank struct {
	DishID   string          `json:"dishId"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CustomerRank is one entry of the customer spend ranking.
type CustomerRank struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	TopDishes  []string        `json:"topDishes"`
}

// DishUsage breaks an ingredient requirement down by contributing dish.
type DishUsage struct {
	DishID   string          `json:"dishId"`
	DishName string          `json:"dishName"`
	Quantity decimal.Decimal `json:"quantity"`
}

// IngredientRequirement is one ingredient's demand versus stock.
type IngredientRequirement struct {
	IngredientID  string          `json:"ingredientId"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	Required      decimal.Decimal `json:"required"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	NeedToBuy     decimal.Decimal `json:"needToBuy"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	LowStock      bool            `json:"lowStock"`
	Dishes        []DishUsage     `json:"dishes"`
	Orders        int             `json:"orders"`
}

// WeeklySummary is the full weekly report payload.
type WeeklySummary struct {
	WeekStart    string                  `json:"weekStart"`
	WeekEnd      string                  `json:"weekEnd"`
	DeliveryDay  string                  `json:"deliveryDay"`
	Summary      Summary                 `json:"summary"`
	TopDishes    []DishRank              `json:"topDishes"`
	TopCustomers []CustomerRank          `json:"topCustomers"`
	Ingredients  []IngredientRequirement `json:"ingredients"`
	Orders       []DeliveryPreview       `json:"orders"`
}

// ShoppingGroup is one partition of the shopping list payload.
type ShoppingGroup struct {
	Label         string                  `json:"label"`
	Items         []IngredientRequirement `json:"items"`
	EstimatedCost decimal.Decimal         `json:"estimatedCost"`
}

// ShoppingList is the shopping list payload.
type ShoppingList struct {
	WeekStart     string          `json:"weekStart"`
	WeekEnd       string          `json:"weekEnd"`
	GroupBy       string          `json:"groupBy"`
	Groups        []ShoppingGroup `json:"groups"`
	Items         int             `json:"items"`
	OrderCount    int             `json:"orderCount"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// DeliveryPreview is one order due on the dashboard day.
type DeliveryPreview struct {
	OrderID     string          `json:"orderId"`
	Number      string          `json:"orderNumber"`
	Customer    string          `json:"customer"`
	Status      string          `json:"status"`
	Items       int             `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Dashboard is the daily dashboard payload.
type Dashboard struct {
	Date       string            `json:"date"`
	Today      Summary           `json:"today"`
	Deliveries []DeliveryPreview `json:"deliveries"`
	LowStock   int               `json:"lowStockIngredients"`
}

func FromWeeklySummary(report *ports.WeeklySummary) WeeklySummary {
	return WeeklySummary{
		WeekStart:    report.WeekStart.Format(dateLayout),
		WeekEnd:      report.WeekEnd.AddDate(0, 0, -1).Format(dateLayout),
		DeliveryDay:  report.DeliveryDay.Format(dateLayout),
		Summary:      fromSummary(report.Summary),
		TopDishes:    fromDishRanks(report.TopDishes),
		TopCustomers: fromCustomerRanks(report.TopCustomers),
		Ingredients:  fromRequirements(report.Ingredients),
		Orders:       fromPreviews(report.Orders),
	}
}

func FromShoppingList(report *ports.ShoppingListReport) ShoppingList {
	groups := make([]ShoppingGroup, 0, len(report.List.Groups))
	for _, group := range report.List.Groups {
		groups = append(groups, ShoppingGroup{
			Label:         group.Label,
			Items:         fromRequirements(group.Items),
			EstimatedCost: group.EstimatedCost,
		})
	}
	return ShoppingList{
		WeekStart:     report.WeekStart.Format(dateLayout),
		WeekEnd:       report.WeekEnd.AddDate(0, 0, -1).Format(dateLayout),
		GroupBy:       string(report.GroupBy),
		Groups:        groups,
		Items:         report.List.Items,
		OrderCount:    report.OrderCount,
		EstimatedCost: report.List.EstimatedCost,
	}
}

func FromDashboard(report *ports.Dashboard) Dashboard {
	return Dashboard{
		Date:       report.Date.Format(dateLayout),
		Today:      fromSummary(report.Today),
		Deliveries: fromPreviews(report.Deliveries),
		LowStock:   report.LowStock,
	}
}

func fromPreviews(previews []ports.DeliveryPreview) []DeliveryPreview {
	out := make([]DeliveryPreview, 0, len(previews))
	for _, preview := range previews {
		out = append(out, DeliveryPreview{
			OrderID:     preview.OrderID,
			Number:      preview.Number,
			Customer:    preview.Customer,
			Status:      preview.Status,
			Items:       preview.Items,
			TotalAmount: preview.TotalAmount,
		})
	}
	return out
}

func fromSummary(summary domain.Summary) Summary {
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[string(status)] = count
	}
	byDay := make([]DaySummary, 0, len(summary.ByDay))
	for _, day := range summary.ByDay {
		byDay = append(byDay, DaySummary{
			Date:    day.Date.Format(dateLayout),
			Count:   day.Count,
			Revenue: day.Revenue,
		})
	}
	return Summary{
		TotalOrders:       summary.TotalOrders,
		TotalRevenue:      summary.TotalRevenue,
		UniqueCustomers:   summary.UniqueCustomers,
		AverageOrderValue: summary.AverageOrderValue,
		ByStatus:          byStatus,
		ByDay:             byDay,
	}
}

func fromDishRanks(ranks []domain.DishRank) []DishRank {
	out := make([]DishRank, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, DishRank{
			DishID:   rank.DishID.String(),
			Name:     rank.Name,
			Quantity: rank.Quantity,
			Revenue:  rank.Revenue,
		})
	}
	return out
}

func fromCustomerRanks(ranks []domain.CustomerRank) []CustomerRank {
	out := make([]CustomerRank, 0, len(ranks))
	for _, rank := range ranks {
		dishes := rank.TopDishes
		if dishes == nil {
			dishes = []string{}
		}
		out = append(out, CustomerRank{
			CustomerID: rank.CustomerID.String(),
			Name:       rank.Name,
			Orders:     rank.Orders,
			TotalSpent: rank.TotalSpent,
			TopDishes:  dishes,
		})
	}
	return out
}

func fromRequirements(reqs []domain.IngredientRequirement) []IngredientRequirement {
	out := make([]IngredientRequirement, 0, len(reqs))
	for _, req := range reqs {
		dishes := make([]DishUsage, 0, len(req.Dishes))
		for _, usage := range req.Dishes {
			dishes = append(dishes, DishUsage{
				DishID:   usage.DishID.String(),
				DishName: usage.DishName,
				Quantity: usage.Quantity,
			})
		}
		out = append(out, IngredientRequirement{
			IngredientID:  req.IngredientID.String(),
			Name:          req.Name,
			Unit:          req.Unit,
			Category:      req.Category,
			Supplier:      req.Supplier,
			Required:      req.Required,
			CurrentStock:  req.CurrentStock,
			NeedToBuy:     req.NeedToBuy,
			EstimatedCost: req.EstimatedCost,
			LowStock:      req.LowStock,
			Dishes:        dishes,
			Orders:        req.Orders,
		})
	}
	return out
}
