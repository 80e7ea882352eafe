package record_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// InvoiceRepository is the invoice storage surface of the use case.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	AddPayment(ctx context.Context, payment *domain.Payment) error
	UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error
}

// TransactionManager keeps the payment insert and the status rederivation
// atomic.
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
