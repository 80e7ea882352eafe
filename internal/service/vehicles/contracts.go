package vehicles

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// ServiceRepository exposes the open-service count the reconciler
// derives the vehicle status from.
type ServiceRepository interface {
	CountOpenByVehicle(ctx context.Context, vehicleID int64) (int, error)
}

// VehicleRepository is the storage surface for vehicle status updates.
type VehicleRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
}

// Logger is the logging interface used by the reconciler.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
