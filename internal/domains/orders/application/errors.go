package application

import (
	"errors"
	"fmt"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidItemPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
