package transition_service

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// ServiceRepository is the service storage surface of the use case.
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ServiceStatus, actualEndTime *time.Time, partsCost, totalCost float64) error
}

// BookingRepository keeps the owned booking in step with the service.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// VehicleReconciler propagates service cascades to the vehicle.
type VehicleReconciler interface {
	OnServiceCascade(ctx context.Context, cascade domain.ServiceCascade) error
}

// TransactionManager keeps the transition and its cascades atomic.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current UTC time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
