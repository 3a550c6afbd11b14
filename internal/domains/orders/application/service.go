package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerDirectory
	dishes    ports.DishCatalog
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, customers ports.CustomerDirectory, dishes ports.DishCatalog) *Service {
	return &Service{repo: repo, customers: customers, dishes: dishes}
}

// CreateOrder snapshots the customer and dish prices, computes the total,
// and persists the order. The repository allocates the yearly order number
// and writes the initial history entry in the same transaction.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	customer, err := s.customers.Lookup(ctx, input.CustomerID)
	if err != nil {
		return nil, mapError(err)
	}
	orderID := uuid.New()
	items, err := s.resolveItems(ctx, orderID, nil, input.Items)
	if err != nil {
		return nil, mapError(err)
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	address := input.DeliveryAddress
	if address == "" {
		// Delivery defaults to the customer's home address.
		address = customer.Address
	}
	order := &domain.Order{
		ID:              orderID,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		OrderDate:       orderDate,
		DeliveryDate:    input.DeliveryDate,
		DeliveryAddress: address,
		Notes:           input.Notes,
		Status:          domain.StatusNew,
		Items:           items,
		TotalAmount:     domain.ComputeTotal(items),
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetOrder loads an order with items and its recent history.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns a filtered, paged order list and the total count.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return orders, total, nil
}

// UpdateOrder applies a partial update to an order and appends one history
// entry per observed change. All reads, item replacement, and history writes
// commit as one all-or-nothing unit in the repository.
func (s *Service) UpdateOrder(ctx context.Context, id uuid.UUID, input ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	var entries []domain.HistoryEntry

	if input.Status != nil {
		next, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		if next != order.Status {
			if !domain.CanTransition(order.Status, next) {
				return nil, mapError(domain.ErrInvalidTransition)
			}
			entries = append(entries, domain.StatusChangeEntry(order.ID, order.Status, next))
			order.Status = next
		}
	}
	if input.DeliveryDate != nil && !input.DeliveryDate.Equal(order.DeliveryDate) {
		entries = append(entries, domain.FieldChangeEntry(order.ID, "deliveryDate",
			order.DeliveryDate.Format(time.RFC3339), input.DeliveryDate.Format(time.RFC3339)))
		order.DeliveryDate = *input.DeliveryDate
	}
	if input.DeliveryAddress != nil && *input.DeliveryAddress != order.DeliveryAddress {
		entries = append(entries, domain.FieldChangeEntry(order.ID, "deliveryAddress",
			order.DeliveryAddress, *input.DeliveryAddress))
		order.DeliveryAddress = *input.DeliveryAddress
	}
	if input.Notes != nil && *input.Notes != order.Notes {
		entries = append(entries, domain.FieldChangeEntry(order.ID, "notes", order.Notes, *input.Notes))
		order.Notes = *input.Notes
	}
	if input.Items != nil {
		newItems, err := s.resolveItems(ctx, order.ID, order.Items, *input.Items)
		if err != nil {
			return nil, mapError(err)
		}
		entries = append(entries, domain.DiffItems(order.ID, order.Items, newItems)...)
		order.Items = newItems
		order.TotalAmount = domain.ComputeTotal(newItems)
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.ApplyUpdate(ctx, order, entries)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteOrder removes an order with its items and history.
func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// resolveItems turns payload lines into item snapshots. Retained dishes keep
// their existing price snapshot; new dishes take the catalog's current price.
// An explicit payload price wins in both cases.
func (s *Service) resolveItems(ctx context.Context, orderID uuid.UUID, current []domain.Item, lines []ports.ItemInput) ([]domain.Item, error) {
	if len(lines) == 0 {
		return nil, domain.ErrNoItems
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.DishID)
	}
	dishes, err := s.dishes.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]domain.Item, len(current))
	for _, item := range current {
		existing[item.DishID] = item
	}

	items := make([]domain.Item, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		dish, ok := dishes[line.DishID]
		if !ok {
			return nil, ports.ErrDishNotFound
		}
		item := domain.Item{
			ID:       uuid.New(),
			OrderID:  orderID,
			DishID:   dish.ID,
			DishName: dish.Name,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		}
		switch {
		case line.Price != nil:
			item.Price = *line.Price
		default:
			if prev, kept := existing[line.DishID]; kept {
				item.Price = prev.Price
			} else {
				item.Price = dish.Price
			}
		}
		items = append(items, item)
	}
	return items, nil
}

var _ ports.Service = (*Service)(nil)
