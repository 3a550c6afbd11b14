package domain

import (
	"github.com/google/uuid"
)

// NewHistoryEntry constructs an append-only history record.
func NewHistoryEntry(orderID uuid.UUID, action HistoryAction, details map[string]any) HistoryEntry {
	return HistoryEntry{
		ID:      uuid.New(),
		OrderID: orderID,
		Action:  action,
		Details: details,
	}
}

// CreatedEntry records the initial creation of an order.
func CreatedEntry(order *Order) HistoryEntry {
	return NewHistoryEntry(order.ID, ActionCreated, map[string]any{
		"number":    order.Number,
		"status":    string(order.Status),
		"itemCount": len(order.Items),
		"total":     order.TotalAmount.String(),
	})
}

// StatusChangeEntry records a workflow transition with human-readable labels.
func StatusChangeEntry(orderID uuid.UUID, from, to Status) HistoryEntry {
	return NewHistoryEntry(orderID, ActionStatusChange, map[string]any{
		"from":      string(from),
		"to":        string(to),
		"fromLabel": from.Label(),
		"toLabel":   to.Label(),
	})
}

// FieldChangeEntry records a scalar field update as an order_updated entry.
func FieldChangeEntry(orderID uuid.UUID, field string, from, to any) HistoryEntry {
	return NewHistoryEntry(orderID, ActionOrderUpdated, map[string]any{
		"field": field,
		"from":  from,
		"to":    to,
	})
}

// DiffItems compares an order's current items against a full replacement
// list, keyed by dish, and yields one history entry per removed, added, or
// changed line.
func DiffItems(orderID uuid.UUID, oldItems, newItems []Item) []HistoryEntry {
	oldByDish := make(map[uuid.UUID]Item, len(oldItems))
	for _, item := range oldItems {
		oldByDish[item.DishID] = item
	}
	newByDish := make(map[uuid.UUID]Item, len(newItems))
	for _, item := range newItems {
		newByDish[item.DishID] = item
	}

	var entries []HistoryEntry
	for _, item := range oldItems {
		if _, kept := newByDish[item.DishID]; !kept {
			entries = append(entries, NewHistoryEntry(orderID, ActionItemRemoved, map[string]any{
				"dishId":   item.DishID.String(),
				"dishName": item.DishName,
				"quantity": item.Quantity,
			}))
		}
	}
	for _, item := range newItems {
		previous, existed := oldByDish[item.DishID]
		if !existed {
			entries = append(entries, NewHistoryEntry(orderID, ActionItemAdded, map[string]any{
				"dishId":   item.DishID.String(),
				"dishName": item.DishName,
				"quantity": item.Quantity,
				"price":    item.Price.String(),
			}))
			continue
		}
		if previous.Quantity != item.Quantity || previous.Notes != item.Notes {
			entries = append(entries, NewHistoryEntry(orderID, ActionItemUpdated, map[string]any{
				"dishId":   item.DishID.String(),
				"dishName": item.DishName,
				"quantity": map[string]any{"from": previous.Quantity, "to": item.Quantity},
			}))
		}
	}
	return entries
}
