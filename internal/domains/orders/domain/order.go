package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order workflow progression.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions encodes the workflow state machine: forward progression
// only, with cancellation reachable from every non-terminal state.
var allowedTransitions = map[Status]map[Status]bool{
	StatusNew: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusPreparing: true,
		StatusCancelled: true,
	},
	StatusPreparing: {
		StatusReady:     true,
		StatusCancelled: true,
	},
	StatusReady: {
		StatusDelivered: true,
		StatusCancelled: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

var statusLabels = map[Status]string{
	StatusNew:       "New",
	StatusConfirmed: "Confirmed",
	StatusPreparing: "Preparing",
	StatusReady:     "Ready",
	StatusDelivered: "Delivered",
	StatusCancelled: "Cancelled",
}

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be greater than zero")
	ErrInvalidItemPrice  = errors.New("item price must not be negative")
)

// ParseStatus accepts status values case-insensitively and normalizes to the
// canonical uppercase form.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := allowedTransitions[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanTransition reports whether the workflow permits moving from one status
// to another.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Label returns the human-readable form used in history entries.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// HistoryAction classifies an order history entry.
type HistoryAction string

const (
	ActionCreated      HistoryAction = "created"
	ActionStatusChange HistoryAction = "status_change"
	ActionItemAdded    HistoryAction = "item_added"
	ActionItemRemoved  HistoryAction = "item_removed"
	ActionItemUpdated  HistoryAction = "item_updated"
	ActionOrderUpdated HistoryAction = "order_updated"
)

// Order is the canonical order aggregate. Customer fields are snapshots
// taken at creation time; TotalAmount is stored redundantly and kept equal
// to the sum of item subtotals.
type Order struct {
	ID              uuid.UUID
	Number          string
	CustomerID      uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	OrderDate       time.Time
	DeliveryDate    time.Time
	DeliveryAddress string
	Notes           string
	TotalAmount     decimal.Decimal
	Status          Status
	Items           []Item
	History         []HistoryEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item is one dish line on an order. DishName and Price are snapshots; later
// catalog changes never affect them.
type Item struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	DishID   uuid.UUID
	DishName string
	Quantity int
	Price    decimal.Decimal
	Notes    string
}

// Subtotal is price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// HistoryEntry is one immutable, append-only record of an order mutation.
type HistoryEntry struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Action    HistoryAction
	Details   map[string]any
	CreatedAt time.Time
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return ErrInvalidItemPrice
		}
	}
	if _, ok := allowedTransitions[o.Status]; !ok {
		return ErrInvalidStatus
	}
	return nil
}

// ComputeTotal sums item subtotals.
func ComputeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// FormatNumber renders the human-readable order number for a yearly sequence
// value, e.g. ORD-2026-0042.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("ORD-%d-%04d", year, seq)
}
