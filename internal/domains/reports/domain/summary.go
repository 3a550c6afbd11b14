package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderdomain "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

// DateField selects which order date drives per-day bucketing.
type DateField int

const (
	// ByDeliveryDate buckets on the delivery date; used by weekly and
	// shopping-list views.
	ByDeliveryDate DateField = iota
	// ByOrderDate buckets on the creation date; used by the daily dashboard.
	ByOrderDate
)

// TopN is how many entries dish and customer rankings carry.
const TopN = 10

// topDishesPerCustomer is how many dish names each ranked customer carries.
const topDishesPerCustomer = 3

// DaySummary is one per-day bucket within a window.
type DaySummary struct {
	Date    time.Time
	Count   int
	Revenue decimal.Decimal
}

// DishRank is one entry of the dish popularity ranking.
type DishRank struct {
	DishID   uuid.UUID
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// CustomerRank is one entry of the customer spend ranking.
type CustomerRank struct {
	CustomerID uuid.UUID
	Name       string
	Orders     int
	TotalSpent decimal.Decimal
	// TopDishes are the customer's most-ordered dish names by quantity.
	TopDishes []string
}

// Summary aggregates an order set. Cancelled orders are excluded from
// revenue, averages, and unique-customer counts but still appear in the
// status breakdown and total count.
type Summary struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	UniqueCustomers   int
	AverageOrderValue decimal.Decimal
	ByStatus          map[orderdomain.Status]int
	ByDay             []DaySummary
}

// Summarize computes window statistics over an already-filtered order set.
// The average is zero, not an error, when the set is empty.
func Summarize(orders []*orderdomain.Order, field DateField) Summary {
	summary := Summary{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		ByStatus:     map[orderdomain.Status]int{},
	}
	customers := map[uuid.UUID]struct{}{}
	days := map[time.Time]*DaySummary{}
	counted := 0
	for _, order := range orders {
		summary.ByStatus[order.Status]++
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		counted++
		summary.TotalRevenue = summary.TotalRevenue.Add(order.TotalAmount)
		customers[order.CustomerID] = struct{}{}

		key := DayOf(order.DeliveryDate)
		if field == ByOrderDate {
			key = DayOf(order.OrderDate)
		}
		bucket, ok := days[key]
		if !ok {
			bucket = &DaySummary{Date: key, Revenue: decimal.Zero}
			days[key] = bucket
		}
		bucket.Count++
		bucket.Revenue = bucket.Revenue.Add(order.TotalAmount)
	}
	summary.UniqueCustomers = len(customers)
	if counted > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			DivRound(decimal.NewFromInt(int64(counted)), 2)
	} else {
		summary.AverageOrderValue = decimal.Zero
	}
	for _, bucket := range days {
		summary.ByDay = append(summary.ByDay, *bucket)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date.Before(summary.ByDay[j].Date)
	})
	return summary
}

// TopDishes ranks dishes in the set by ordered quantity, ties broken by
// revenue, capped at TopN. Cancelled orders are skipped.
func TopDishes(orders []*orderdomain.Order) []DishRank {
	byDish := map[uuid.UUID]*DishRank{}
	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		for _, item := range order.Items {
			rank, ok := byDish[item.DishID]
			if !ok {
				rank = &DishRank{DishID: item.DishID, Name: item.DishName, Revenue: decimal.Zero}
				byDish[item.DishID] = rank
			}
			rank.Quantity += item.Quantity
			rank.Revenue = rank.Revenue.Add(item.Subtotal())
		}
	}
	ranks := make([]DishRank, 0, len(byDish))
	for _, rank := range byDish {
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Quantity != ranks[j].Quantity {
			return ranks[i].Quantity > ranks[j].Quantity
		}
		return ranks[i].Revenue.GreaterThan(ranks[j].Revenue)
	})
	if len(ranks) > TopN {
		ranks = ranks[:TopN]
	}
	return ranks
}

// TopCustomers ranks customers by total spend, capped at TopN; each entry
// carries the customer's three most-ordered dish names. Cancelled orders are
// skipped.
func TopCustomers(orders []*orderdomain.Order) []CustomerRank {
	type accumulator struct {
		rank   CustomerRank
		dishes map[string]int
	}
	byCustomer := map[uuid.UUID]*accumulator{}
	for _, order := range orders {
		if order.Status == orderdomain.StatusCancelled {
			continue
		}
		acc, ok := byCustomer[order.CustomerID]
		if !ok {
			acc = &accumulator{
				rank: CustomerRank{
					CustomerID: order.CustomerID,
					Name:       order.CustomerName,
					TotalSpent: decimal.Zero,
				},
				dishes: map[string]int{},
			}
			byCustomer[order.CustomerID] = acc
		}
		acc.rank.Orders++
		acc.rank.TotalSpent = acc.rank.TotalSpent.Add(order.TotalAmount)
		for _, item := range order.Items {
			acc.dishes[item.DishName] += item.Quantity
		}
	}
	ranks := make([]CustomerRank, 0, len(byCustomer))
	for _, acc := range byCustomer {
		type dishCount struct {
			name  string
			count int
		}
		counts := make([]dishCount, 0, len(acc.dishes))
		for name, count := range acc.dishes {
			counts = append(counts, dishCount{name, count})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].name < counts[j].name
		})
		for i := 0; i < len(counts) && i < topDishesPerCustomer; i++ {
			acc.rank.TopDishes = append(acc.rank.TopDishes, counts[i].name)
		}
		ranks = append(ranks, acc.rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].TotalSpent.GreaterThan(ranks[j].TotalSpent)
	})
	if len(ranks) > TopN {
		ranks = ranks[:TopN]
	}
	return ranks
}
