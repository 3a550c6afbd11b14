package domain

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

// DishUsage is one dish's contribution to an ingredient requirement.
type DishUsage struct {
	DishID   uuid.UUID
	DishName string
	Quantity decimal.Decimal
}

// IngredientRequirement is the total amount of one ingredient needed to cook
// an order set, matched against current inventory.
type IngredientRequirement struct {
	IngredientID  uuid.UUID
	Name          string
	Unit          string
	Category      string
	Supplier      string
	Required      decimal.Decimal
	CurrentStock  decimal.Decimal
	NeedToBuy     decimal.Decimal
	EstimatedCost decimal.Decimal
	LowStock      bool
	// Dishes breaks the requirement down by contributing dish.
	Dishes []DishUsage
	// Orders is how many distinct orders drive this requirement.
	Orders int
}

// Requirements explodes the orders' items through each dish's bill of
// materials and totals per-ingredient demand. Cancelled orders are skipped,
// as are items whose dish is no longer in the catalog. Quantities round to
// two decimal places; NeedToBuy never goes negative.
func Requirements(orders []*orderdomain.Order, dishes map[uuid.UUID]*catalogdomain.Dish, ingredients map[uuid.UUID]*catalogdomain.Ingredient) []IngredientRequirement {
	type accumulator struct {
		req    IngredientRequirement
		byDish map[uuid.UUID]*DishUsage
		orders map[uuid.UUID]struct{}
	}
	totals := map[uuid.UUID]*accumulator{}

	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		for _, item := range order.Items {
			dish, ok := dishes[item.DishID]
			if !ok {
				continue
			}
			itemQty := decimal.NewFromInt(int64(item.Quantity))
			for _, line := range dish.Ingredients {
				acc, ok := totals[line.IngredientID]
				if !ok {
					acc = &accumulator{
						req: IngredientRequirement{
							IngredientID: line.IngredientID,
							Required:     decimal.Zero,
						},
						byDish: map[uuid.UUID]*DishUsage{},
						orders: map[uuid.UUID]struct{}{},
					}
					totals[line.IngredientID] = acc
				}
				amount := line.Quantity.Mul(itemQty)
				acc.req.Required = acc.req.Required.Add(amount)
				acc.orders[order.ID] = struct{}{}

				usage, ok := acc.byDish[dish.ID]
				if !ok {
					usage = &DishUsage{DishID: dish.ID, DishName: dish.Name, Quantity: decimal.Zero}
					acc.byDish[dish.ID] = usage
				}
				usage.Quantity = usage.Quantity.Add(amount)
			}
		}
	}

	reqs := make([]IngredientRequirement, 0, len(totals))
	for id, acc := range totals {
		req := acc.req
		req.Required = req.Required.Round(2)
		if ing, ok := ingredients[id]; ok {
			req.Name = ing.Name
			req.Unit = ing.Unit
			req.Category = ing.Category
			req.Supplier = ing.Supplier
			req.CurrentStock = ing.CurrentStock
			req.LowStock = ing.LowStock()
			shortfall := req.Required.Sub(ing.CurrentStock)
			if shortfall.IsNegative() {
				shortfall = decimal.Zero
			}
			req.NeedToBuy = shortfall.Round(2)
			req.EstimatedCost = req.Required.Mul(ing.CostPerUnit).Round(2)
		} else {
			req.CurrentStock = decimal.Zero
			req.NeedToBuy = req.Required
			req.EstimatedCost = decimal.Zero
		}
		req.Orders = len(acc.orders)
		for _, usage := range acc.byDish {
			u := *usage
			u.Quantity = u.Quantity.Round(2)
			req.Dishes = append(req.Dishes, u)
		}
		sort.Slice(req.Dishes, func(i, j int) bool {
			return req.Dishes[i].Quantity.GreaterThan(req.Dishes[j].Quantity)
		})
		reqs = append(reqs, req)
	}
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].Name < reqs[j].Name
	})
	return reqs
}
