package application

import (
	"errors"
	"fmt"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyDishName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidBOMQuantity) ||
		errors.Is(err, domain.ErrEmptyIngredientName) ||
		errors.Is(err, domain.ErrEmptyUnit) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
