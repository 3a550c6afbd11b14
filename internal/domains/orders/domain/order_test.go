package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_CaseInsensitive(t *testing.T) {
	status, err := ParseStatus("confirmed")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, status)

	status, err = ParseStatus("DELIVERED")
	require.NoError(t, err)
	require.Equal(t, StatusDelivered, status)
}

func TestParseStatus_Unknown(t *testing.T) {
	_, err := ParseStatus("SHIPPED")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCanTransition_ForwardChain(t *testing.T) {
	require.True(t, CanTransition(StatusNew, StatusConfirmed))
	require.True(t, CanTransition(StatusConfirmed, StatusPreparing))
	require.True(t, CanTransition(StatusPreparing, StatusReady))
	require.True(t, CanTransition(StatusReady, StatusDelivered))
}

func TestCanTransition_NoSkippingOrReversing(t *testing.T) {
	require.False(t, CanTransition(StatusNew, StatusPreparing))
	require.False(t, CanTransition(StatusConfirmed, StatusNew))
	require.False(t, CanTransition(StatusDelivered, StatusNew))
	require.False(t, CanTransition(StatusCancelled, StatusConfirmed))
}

func TestCanTransition_CancelFromAnyActiveStatus(t *testing.T) {
	for _, status := range []Status{StatusNew, StatusConfirmed, StatusPreparing, StatusReady} {
		require.True(t, CanTransition(status, StatusCancelled), "from %s", status)
	}
	require.False(t, CanTransition(StatusDelivered, StatusCancelled))
	require.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestTerminalStatuses(t *testing.T) {
	require.True(t, StatusDelivered.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusReady.Terminal())
}

func TestComputeTotal(t *testing.T) {
	items := []Item{
		{Quantity: 2, Price: decimal.NewFromFloat(12.50)},
		{Quantity: 1, Price: decimal.NewFromFloat(8.00)},
	}
	require.True(t, ComputeTotal(items).Equal(decimal.NewFromFloat(33.00)))
	require.True(t, ComputeTotal(nil).IsZero())
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "ORD-2026-0001", FormatNumber(2026, 1))
	require.Equal(t, "ORD-2026-0042", FormatNumber(2026, 42))
	require.Equal(t, "ORD-2027-10000", FormatNumber(2027, 10000))
}

func TestDiffItems(t *testing.T) {
	orderID := uuid.New()
	dishA := uuid.New()
	dishB := uuid.New()
	dishC := uuid.New()
	before := []Item{
		{OrderID: orderID, DishID: dishA, DishName: "Soup", Quantity: 1, Price: decimal.NewFromInt(5)},
		{OrderID: orderID, DishID: dishB, DishName: "Salad", Quantity: 2, Price: decimal.NewFromInt(7)},
	}
	after := []Item{
		{OrderID: orderID, DishID: dishB, DishName: "Salad", Quantity: 3, Price: decimal.NewFromInt(7)},
		{OrderID: orderID, DishID: dishC, DishName: "Pie", Quantity: 1, Price: decimal.NewFromInt(9)},
	}

	entries := DiffItems(orderID, before, after)
	require.Len(t, entries, 3)

	byAction := map[HistoryAction]HistoryEntry{}
	for _, entry := range entries {
		byAction[entry.Action] = entry
	}

	removed := byAction[ActionItemRemoved]
	require.Equal(t, "Soup", removed.Details["dishName"])

	updated := byAction[ActionItemUpdated]
	require.Equal(t, "Salad", updated.Details["dishName"])

	added := byAction[ActionItemAdded]
	require.Equal(t, "Pie", added.Details["dishName"])
}

func TestOrderValidate(t *testing.T) {
	order := &Order{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Dana",
		Status:       StatusNew,
	}
	require.ErrorIs(t, order.Validate(), ErrNoItems)

	order.Items = []Item{{DishID: uuid.New(), Quantity: 0, Price: decimal.NewFromInt(10)}}
	require.ErrorIs(t, order.Validate(), ErrInvalidQuantity)

	order.Items = []Item{{DishID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(-1)}}
	require.ErrorIs(t, order.Validate(), ErrInvalidItemPrice)

	order.Items = []Item{{DishID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(10)}}
	require.NoError(t, order.Validate())
}
