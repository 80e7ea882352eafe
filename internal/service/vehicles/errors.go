package vehicles

import "errors"

var (
	// ErrVehicleNotFound is returned when the vehicle does not exist
	ErrVehicleNotFound = errors.New("vehicles.reconciler: vehicle not found")

	// ErrInternal is returned on unexpected repository failures
	ErrInternal = errors.New("vehicles.reconciler: internal error")
)
