package reschedule_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	mechanicRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/mechanic"
	serviceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeBookingStore struct {
	bookings map[int64]*domain.Booking
}

func (s *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (s *fakeBookingStore) GetByMechanicWithFilter(_ context.Context, filter domain.MechanicBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.MechanicID != filter.MechanicID {
			continue
		}
		if filter.ActiveOnly && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeBookingStore) UpdateInterval(_ context.Context, id int64, interval domain.TimeInterval) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	for _, other := range s.bookings {
		if other.ID == id || other.MechanicID != b.MechanicID || !other.IsActive() {
			continue
		}
		if other.Interval.Overlaps(interval) {
			return bookingRepo.ErrOverlapConstraint
		}
	}
	b.Interval = interval
	return nil
}

type fakeServiceStore struct {
	intervals map[int64]domain.TimeInterval
}

func (s *fakeServiceStore) UpdateInterval(_ context.Context, id int64, interval domain.TimeInterval) error {
	if _, ok := s.intervals[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	s.intervals[id] = interval
	return nil
}

type fakeMechanicStore struct {
	mechanics map[int64]*domain.Mechanic
}

func (s *fakeMechanicStore) GetByID(_ context.Context, id int64) (*domain.Mechanic, error) {
	m, ok := s.mechanics[id]
	if !ok {
		return nil, mechanicRepo.ErrMechanicNotFound
	}
	return m, nil
}

func tuesday(hours int) time.Time {
	return time.Date(2026, 3, 10, hours, 0, 0, 0, time.UTC)
}

func newFixture() (*UseCase, *fakeBookingStore, *fakeServiceStore) {
	bookings := &fakeBookingStore{bookings: map[int64]*domain.Booking{
		1: {
			ID:         1,
			MechanicID: 7,
			Status:     domain.BookingStatusPending,
			Interval:   domain.TimeInterval{Start: tuesday(10), End: tuesday(12)},
		},
		2: {
			ID:         2,
			MechanicID: 7,
			Status:     domain.BookingStatusPending,
			Interval:   domain.TimeInterval{Start: tuesday(14), End: tuesday(16)},
		},
	}}
	mechanics := &fakeMechanicStore{mechanics: map[int64]*domain.Mechanic{
		7: {ID: 7, Status: domain.MechanicStatusActive},
	}}
	services := &fakeServiceStore{intervals: map[int64]domain.TimeInterval{}}
	return NewUseCase(bookings, mechanics, services, &fakeTxManager{}, nopLogger{}), bookings, services
}

func TestExecute_MovesBooking(t *testing.T) {
	uc, bookings, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		StartsAt:  tuesday(8),
		EndsAt:    tuesday(10),
	})

	require.NoError(t, err)
	assert.Equal(t, tuesday(8), resp.StartsAt)
	assert.Equal(t, tuesday(8), bookings.bookings[1].Interval.Start)
}

// A booking bound to a service carries the service's estimated interval;
// moving the booking must move the service too, in the same transaction.
func TestExecute_SyncsBoundServiceInterval(t *testing.T) {
	uc, bookings, services := newFixture()
	bookings.bookings[1].ServiceID = ptr.Ptr(int64(4))
	services.intervals[4] = bookings.bookings[1].Interval

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		StartsAt:  tuesday(8),
		EndsAt:    tuesday(10),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ServiceID)
	assert.Equal(t, int64(4), *resp.ServiceID)
	assert.Equal(t, domain.TimeInterval{Start: tuesday(8), End: tuesday(10)}, services.intervals[4])
}

// Moving a booking within its own old slot must not conflict with itself.
func TestExecute_DoesNotConflictWithItself(t *testing.T) {
	uc, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		StartsAt:  tuesday(11),
		EndsAt:    tuesday(13),
	})

	require.NoError(t, err)
	assert.Equal(t, tuesday(11), resp.StartsAt)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	uc, bookings, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		StartsAt:  tuesday(15),
		EndsAt:    tuesday(17),
	})

	require.ErrorIs(t, err, scheduling.ErrConflict)

	var conflict *scheduling.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.BookingID)

	// the booking did not move
	assert.Equal(t, tuesday(10), bookings.bookings[1].Interval.Start)
}

func TestExecute_TerminalBookingRejected(t *testing.T) {
	uc, bookings, _ := newFixture()

	for _, status := range []domain.BookingStatus{domain.BookingStatusCompleted, domain.BookingStatusCancelled} {
		bookings.bookings[1].Status = status

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 1,
			StartsAt:  tuesday(8),
			EndsAt:    tuesday(10),
		})
		assert.ErrorIs(t, err, ErrBookingNotActive)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 99,
		StartsAt:  tuesday(8),
		EndsAt:    tuesday(10),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		StartsAt:  tuesday(12),
		EndsAt:    tuesday(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}
