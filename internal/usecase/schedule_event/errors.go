package schedule_event

import "errors"

var (
	// ErrMechanicNotFound is returned when the mechanic does not exist
	ErrMechanicNotFound = errors.New("schedule_event: mechanic not found")

	// ErrVehicleNotFound is returned when the service payload references
	// an unknown vehicle
	ErrVehicleNotFound = errors.New("schedule_event: vehicle not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("schedule_event: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("schedule_event: internal error")
)
