package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

// Item is the HTTP representation of an order line.
type Item struct {
	ID       string          `json:"id"`
	DishID   string          `json:"dishId"`
	DishName string          `json:"dishName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Notes    string          `json:"notes,omitempty"`
}

// HistoryEntry is the HTTP representation of one audit log entry.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Order is the HTTP representation of an order with its snapshots.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"orderNumber"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	DeliveryDate    time.Time       `json:"deliveryDate"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Items           []Item          `json:"items"`
	History         []HistoryEntry  `json:"history,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// MutationItem is one dish line on an inbound order payload. Price is
// optional; absent means the dish's current catalog price (or the existing
// snapshot on update).
type MutationItem struct {
	DishID   string           `json:"dishId"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Notes    string           `json:"notes"`
}

// CreateOrder captures inbound payloads for order creation.
type CreateOrder struct {
	CustomerID      string         `json:"customerId"`
	OrderDate       *time.Time     `json:"orderDate,omitempty"`
	DeliveryDate    time.Time      `json:"deliveryDate"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Notes           string         `json:"notes"`
	Items           []MutationItem `json:"items"`
}

// UpdateOrder captures partial updates while preserving field presence. A
// present Items array replaces the order's item list wholesale.
type UpdateOrder struct {
	Status          *string         `json:"status,omitempty"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Items           *[]MutationItem `json:"items,omitempty"`
}

// OrderPage wraps an order listing with paging metadata.
type OrderPage struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func ToCreateInput(payload CreateOrder) (ports.CreateOrderInput, error) {
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return ports.CreateOrderInput{}, fmt.Errorf("invalid customer id %q", payload.CustomerID)
	}
	items, err := toItemInputs(payload.Items)
	if err != nil {
		return ports.CreateOrderInput{}, err
	}
	input := ports.CreateOrderInput{
		CustomerID:      customerID,
		DeliveryDate:    payload.DeliveryDate,
		DeliveryAddress: payload.DeliveryAddress,
		Notes:           payload.Notes,
		Items:           items,
	}
	if payload.OrderDate != nil {
		input.OrderDate = *payload.OrderDate
	}
	return input, nil
}

func ToUpdateInput(payload UpdateOrder) (ports.UpdateOrderInput, error) {
	input := ports.UpdateOrderInput{
		Status:          payload.Status,
		DeliveryDate:    payload.DeliveryDate,
		DeliveryAddress: payload.DeliveryAddress,
		Notes:           payload.Notes,
	}
	if payload.Items != nil {
		items, err := toItemInputs(*payload.Items)
		if err != nil {
			return ports.UpdateOrderInput{}, err
		}
		input.Items = &items
	}
	return input, nil
}

func toItemInputs(payload []MutationItem) ([]ports.ItemInput, error) {
	items := make([]ports.ItemInput, 0, len(payload))
	for _, line := range payload {
		dishID, err := uuid.Parse(line.DishID)
		if err != nil {
			return nil, fmt.Errorf("invalid dish id %q", line.DishID)
		}
		items = append(items, ports.ItemInput{
			DishID:   dishID,
			Quantity: line.Quantity,
			Price:    line.Price,
			Notes:    line.Notes,
		})
	}
	return items, nil
}

func FromOrder(order *domain.Order) Order {
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, Item{
			ID:       item.ID.String(),
			DishID:   item.DishID.String(),
			DishName: item.DishName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
			Notes:    item.Notes,
		})
	}
	history := make([]HistoryEntry, 0, len(order.History))
	for _, entry := range order.History {
		history = append(history, HistoryEntry{
			ID:        entry.ID.String(),
			Action:    string(entry.Action),
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}
	return Order{
		ID:              order.ID.String(),
		Number:          order.Number,
		CustomerID:      order.CustomerID.String(),
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		OrderDate:       order.OrderDate,
		DeliveryDate:    order.DeliveryDate,
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		Status:          string(order.Status),
		StatusLabel:     order.Status.Label(),
		TotalAmount:     order.TotalAmount,
		Items:           items,
		History:         history,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func FromOrderList(orders []*domain.Order, total int64, page, limit int) OrderPage {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrder(order))
	}
	return OrderPage{Orders: out, Total: total, Page: page, Limit: limit}
}
