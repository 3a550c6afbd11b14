package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupBy selects how shopping-list items are partitioned.
type GroupBy string

const (
	GroupByCategory GroupBy = "category"
	GroupBySupplier GroupBy = "supplier"
	GroupByNone     GroupBy = "all"
)

// Fallback group labels for ingredients missing the grouping field.
const (
	labelUncategorized = "Uncategorized"
	labelUnspecified   = "Unspecified"
	labelAllItems      = "All Items"
)

// ShoppingGroup is one partition of the shopping list.
type ShoppingGroup struct {
	Label         string
	Items         []IngredientRequirement
	EstimatedCost decimal.Decimal
}

// ShoppingList partitions the week's ingredient requirements.
type ShoppingList struct {
	Groups        []ShoppingGroup
	Items         int
	EstimatedCost decimal.Decimal
}

// ParseGroupBy maps a query value onto a grouping mode, defaulting to none.
func ParseGroupBy(raw string) GroupBy {
	switch GroupBy(raw) {
	case GroupByCategory:
		return GroupByCategory
	case GroupBySupplier:
		return GroupBySupplier
	default:
		return GroupByNone
	}
}

// BuildShoppingList places every requirement into exactly one group keyed by
// the requested field. Groups come out sorted by label, items within a group
// by name.
func BuildShoppingList(reqs []IngredientRequirement, groupBy GroupBy) ShoppingList {
	list := ShoppingList{EstimatedCost: decimal.Zero}
	groups := map[string]*ShoppingGroup{}
	for _, req := range reqs {
		label := groupLabel(req, groupBy)
		group, ok := groups[label]
		if !ok {
			group = &ShoppingGroup{Label: label, EstimatedCost: decimal.Zero}
			groups[label] = group
		}
		group.Items = append(group.Items, req)
		group.EstimatedCost = group.EstimatedCost.Add(req.EstimatedCost)
		list.Items++
		list.EstimatedCost = list.EstimatedCost.Add(req.EstimatedCost)
	}
	for _, group := range groups {
		sort.Slice(group.Items, func(i, j int) bool {
			return group.Items[i].Name < group.Items[j].Name
		})
		list.Groups = append(list.Groups, *group)
	}
	sort.Slice(list.Groups, func(i, j int) bool {
		return list.Groups[i].Label < list.Groups[j].Label
	})
	return list
}

func groupLabel(req IngredientRequirement, groupBy GroupBy) string {
	switch groupBy {
	case GroupByCategory:
		if req.Category == "" {
			return labelUncategorized
		}
		return req.Category
	case GroupBySupplier:
		if req.Supplier == "" {
			return labelUnspecified
		}
		return req.Supplier
	default:
		return labelAllItems
	}
}
