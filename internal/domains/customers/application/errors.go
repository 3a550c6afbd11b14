package application

import (
	"errors"
	"fmt"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid customer input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidPhone) ||
		errors.Is(err, domain.ErrInvalidKind) ||
		errors.Is(err, domain.ErrEmptyPreferenceValue) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
