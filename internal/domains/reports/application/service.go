package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	catalogports "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	orderports "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/reports/ports"
)

// Service computes reports straight off the order and catalog repositories;
// reports own no state of their own.
type Service struct {
	orders      orderports.Repository
	dishes      catalogports.DishRepository
	ingredients catalogports.IngredientRepository
}

var _ ports.Service = (*Service)(nil)

func NewService(orders orderports.Repository, dishes catalogports.DishRepository, ingredients catalogports.IngredientRepository) *Service {
	return &Service{orders: orders, dishes: dishes, ingredients: ingredients}
}

func (s *Service) WeeklySummary(ctx context.Context, weekOf time.Time) (*ports.WeeklySummary, error) {
	start, end := domain.WeekWindow(weekOf)
	orders, err := s.orders.ListByDeliveryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requirementsFor(ctx, orders)
	if err != nil {
		return nil, err
	}
	return &ports.WeeklySummary{
		WeekStart:    start,
		WeekEnd:      end,
		DeliveryDay:  domain.FridayOf(weekOf),
		Summary:      domain.Summarize(orders, domain.ByDeliveryDate),
		TopDishes:    domain.TopDishes(orders),
		TopCustomers: domain.TopCustomers(orders),
		Ingredients:  reqs,
		Orders:       previews(orders),
	}, nil
}

func (s *Service) ShoppingList(ctx context.Context, weekOf time.Time, groupBy domain.GroupBy) (*ports.ShoppingListReport, error) {
	start, end := domain.WeekWindow(weekOf)
	orders, err := s.orders.ListByDeliveryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requirementsFor(ctx, orders)
	if err != nil {
		return nil, err
	}
	count := 0
	for _, order := range orders {
		if order.Status != orderdomain.StatusCancelled {
			count++
		}
	}
	return &ports.ShoppingListReport{
		WeekStart:  start,
		WeekEnd:    end,
		GroupBy:    groupBy,
		List:       domain.BuildShoppingList(reqs, groupBy),
		OrderCount: count,
	}, nil
}

func (s *Service) Dashboard(ctx context.Context, day time.Time) (*ports.Dashboard, error) {
	from := domain.DayOf(day)
	to := from.AddDate(0, 0, 1)
	placed, err := s.orders.ListByOrderDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	due, err := s.orders.ListByDeliveryRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	low, err := s.ingredients.List(ctx, catalogports.IngredientFilter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	return &ports.Dashboard{
		Date:       from,
		Today:      domain.Summarize(placed, domain.ByOrderDate),
		Deliveries: previews(due),
		LowStock:   len(low),
	}, nil
}

func previews(orders []*orderdomain.Order) []ports.DeliveryPreview {
	out := make([]ports.DeliveryPreview, 0, len(orders))
	for _, order := range orders {
		out = append(out, ports.DeliveryPreview{
			OrderID:     order.ID.String(),
			Number:      order.Number,
			Customer:    order.CustomerName,
			Status:      string(order.Status),
			Items:       len(order.Items),
			TotalAmount: order.TotalAmount,
		})
	}
	return out
}

// requirementsFor loads the dish and ingredient data the orders touch and
// explodes the bills of materials. A missing dish (deleted since the order
// was placed) drops out of the calculation silently.
func (s *Service) requirementsFor(ctx context.Context, orders []*orderdomain.Order) ([]domain.IngredientRequirement, error) {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0)
	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		for _, item := range order.Items {
			if _, ok := seen[item.DishID]; ok {
				continue
			}
			seen[item.DishID] = struct{}{}
			ids = append(ids, item.DishID)
		}
	}
	dishes := map[uuid.UUID]*catalogdomain.Dish{}
	if len(ids) > 0 {
		var err error
		dishes, err = s.dishes.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	inventory, err := s.ingredients.List(ctx, catalogports.IngredientFilter{})
	if err != nil {
		return nil, err
	}
	ingredients := make(map[uuid.UUID]*catalogdomain.Ingredient, len(inventory))
	for _, ing := range inventory {
		ingredients[ing.ID] = ing
	}
	return domain.Requirements(orders, dishes, ingredients), nil
}
