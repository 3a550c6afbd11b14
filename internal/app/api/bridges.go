package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogports "github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
	customerports "github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
	orderports "github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

// customerDirectory adapts the customers repository to the lookup the orders
// context needs for snapshotting.
type customerDirectory struct {
	repo customerports.Repository
}

func (d customerDirectory) Lookup(ctx context.Context, id uuid.UUID) (orderports.CustomerSnapshot, error) {
	customer, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return orderports.CustomerSnapshot{}, orderports.ErrCustomerNotFound
		}
		return orderports.CustomerSnapshot{}, err
	}
	return orderports.CustomerSnapshot{
		ID:      customer.ID,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Email:   customer.Email,
		Address: customer.Address,
	}, nil
}

// dishCatalog adapts the dish repository to the price lookup the orders
// context needs.
type dishCatalog struct {
	repo catalogports.DishRepository
}

func (d dishCatalog) Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]orderports.DishInfo, error) {
	dishes, err := d.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]orderports.DishInfo, len(dishes))
	for id, dish := range dishes {
		out[id] = orderports.DishInfo{ID: dish.ID, Name: dish.Name, Price: dish.Price}
	}
	return out, nil
}
