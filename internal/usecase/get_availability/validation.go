package get_availability

import (
	"fmt"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Days < 0 {
		return fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	if req.Days > domain.MaxAvailabilityHorizon {
		return fmt.Errorf("%w: days must not exceed %d", ErrInvalidInput, domain.MaxAvailabilityHorizon)
	}

	return nil
}
