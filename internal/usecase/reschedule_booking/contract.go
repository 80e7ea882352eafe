package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingRepository is the booking storage surface of the use case.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMechanicWithFilter(ctx context.Context, filter domain.MechanicBookingsFilter) ([]*domain.Booking, error)
	UpdateInterval(ctx context.Context, id int64, interval domain.TimeInterval) error
}

// ServiceRepository keeps a bound service's estimated interval in step
// with its booking.
type ServiceRepository interface {
	UpdateInterval(ctx context.Context, id int64, interval domain.TimeInterval) error
}

// MechanicRepository loads the mechanic being re-booked.
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// TransactionManager serializes the re-validation and commit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
