package schedule_event

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// validateRequest checks the request before any storage lookup.
func validateRequest(req *Request) error {
	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanicID must be positive", ErrInvalidInput)
	}

	interval := domain.TimeInterval{Start: req.StartsAt, End: req.EndsAt}
	if err := interval.Validate(); err != nil {
		return err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	if req.Service != nil {
		if err := validateServicePayload(req.Service); err != nil {
			return err
		}
	}

	return nil
}

func validateServicePayload(payload *ServicePayload) error {
	if payload.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if payload.LaborHours < 0 {
		return fmt.Errorf("%w: laborHours must not be negative", ErrInvalidInput)
	}
	if payload.HourlyRate < 0 {
		return fmt.Errorf("%w: hourlyRate must not be negative", ErrInvalidInput)
	}
	for _, part := range payload.Parts {
		if part.Name == "" {
			return fmt.Errorf("%w: part name is required", ErrInvalidInput)
		}
		if part.Quantity <= 0 {
			return fmt.Errorf("%w: part quantity must be positive", ErrInvalidInput)
		}
		if part.UnitPrice < 0 {
			return fmt.Errorf("%w: part unit price must not be negative", ErrInvalidInput)
		}
	}
	return nil
}
