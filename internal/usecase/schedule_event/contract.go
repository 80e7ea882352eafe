package schedule_event

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingRepository is the booking storage surface of the use case.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByMechanicWithFilter(ctx context.Context, filter domain.MechanicBookingsFilter) ([]*domain.Booking, error)
	SetServiceID(ctx context.Context, id, serviceID int64) error
}

// MechanicRepository loads the mechanic being booked.
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// ServiceRepository creates the service ticket bound to the booking.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
}

// VehicleReconciler propagates service cascades to the vehicle.
type VehicleReconciler interface {
	OnServiceCascade(ctx context.Context, cascade domain.ServiceCascade) error
}

// TransactionManager serializes the admit-then-commit sequence.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
