package schedule_event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	mechanicRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeTxManager serializes transactions with a mutex, mirroring what the
// serializable isolation level plus row locks give the real store.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeBookingStore keeps bookings in memory and enforces the overlap
// exclusion constraint at insert, like the database backstop.
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1}
}

func (s *fakeBookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.MechanicID == b.MechanicID && existing.IsActive() && existing.Interval.Overlaps(b.Interval) {
			return nil, bookingRepo.ErrOverlapConstraint
		}
	}

	stored := *b
	stored.ID = s.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.bookings = append(s.bookings, &stored)
	return &stored, nil
}

func (s *fakeBookingStore) GetByMechanicWithFilter(_ context.Context, filter domain.MechanicBookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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

func (s *fakeBookingStore) SetServiceID(_ context.Context, id, serviceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			b.ServiceID = ptr.Ptr(serviceID)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
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

type fakeServiceStore struct {
	mu       sync.Mutex
	nextID   int64
	services []*domain.Service
}

func (s *fakeServiceStore) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *svc
	if s.nextID == 0 {
		s.nextID = 1
	}
	stored.ID = s.nextID
	s.nextID++
	s.services = append(s.services, &stored)
	return &stored, nil
}

type fakeReconciler struct {
	mu       sync.Mutex
	cascades []domain.ServiceCascade
	err      error
}

func (r *fakeReconciler) OnServiceCascade(_ context.Context, cascade domain.ServiceCascade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.cascades = append(r.cascades, cascade)
	return nil
}

func newTestUseCase(bookings *fakeBookingStore, services *fakeServiceStore, reconciler *fakeReconciler) *UseCase {
	mechanics := &fakeMechanicStore{mechanics: map[int64]*domain.Mechanic{
		7: {ID: 7, Status: domain.MechanicStatusActive},
	}}
	return NewUseCase(bookings, mechanics, services, reconciler, &fakeTxManager{}, nopLogger{})
}

func tuesday(hours int) time.Time {
	return time.Date(2026, 3, 10, hours, 0, 0, 0, time.UTC)
}

func TestExecute_SchedulesStandaloneEvent(t *testing.T) {
	bookings := newFakeBookingStore()
	uc := newTestUseCase(bookings, &fakeServiceStore{}, &fakeReconciler{})

	resp, err := uc.Execute(context.Background(), &Request{
		MechanicID: 7,
		StartsAt:   tuesday(10),
		EndsAt:     tuesday(12),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.MechanicID)
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
	assert.Nil(t, resp.ServiceID)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_OpensServiceWithBooking(t *testing.T) {
	bookings := newFakeBookingStore()
	services := &fakeServiceStore{}
	reconciler := &fakeReconciler{}
	uc := newTestUseCase(bookings, services, reconciler)

	resp, err := uc.Execute(context.Background(), &Request{
		MechanicID: 7,
		StartsAt:   tuesday(10),
		EndsAt:     tuesday(12),
		Service: &ServicePayload{
			VehicleID:  3,
			LaborHours: 2,
			HourlyRate: 50,
			Parts: []PartPayload{
				{Name: "oil filter", Quantity: 1, UnitPrice: 20, Available: true},
			},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ServiceID)
	require.NotNil(t, resp.TotalCost)
	assert.InDelta(t, 120.0, *resp.TotalCost, 1e-9)

	// booking is bound to the created service
	require.NotNil(t, bookings.bookings[0].ServiceID)
	assert.Equal(t, *resp.ServiceID, *bookings.bookings[0].ServiceID)

	// the vehicle went into maintenance via the opened cascade
	require.Len(t, reconciler.cascades, 1)
	assert.Equal(t, domain.EventServiceOpened, reconciler.cascades[0].Event)
	assert.Equal(t, int64(3), reconciler.cascades[0].VehicleID)
}

func TestExecute_RejectionLeavesNoState(t *testing.T) {
	bookings := newFakeBookingStore()
	services := &fakeServiceStore{}
	reconciler := &fakeReconciler{}
	uc := newTestUseCase(bookings, services, reconciler)

	_, err := uc.Execute(context.Background(), &Request{
		MechanicID: 7,
		StartsAt:   tuesday(10),
		EndsAt:     tuesday(12),
	})
	require.NoError(t, err)

	// second request overlaps, must be rejected with the blocking booking
	_, err = uc.Execute(context.Background(), &Request{
		MechanicID: 7,
		StartsAt:   tuesday(11),
		EndsAt:     tuesday(13),
		Service:    &ServicePayload{VehicleID: 3},
	})
	require.ErrorIs(t, err, scheduling.ErrConflict)

	var conflict *scheduling.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, bookings.bookings[0].ID, conflict.BookingID)

	// nothing of the rejected request was committed
	assert.Len(t, bookings.bookings, 1)
	assert.Empty(t, services.services)
	assert.Empty(t, reconciler.cascades)
}

func TestExecute_BackToBackAdmitted(t *testing.T) {
	bookings := newFakeBookingStore()
	uc := newTestUseCase(bookings, &fakeServiceStore{}, &fakeReconciler{})

	_, err := uc.Execute(context.Background(), &Request{
		MechanicID: 7, StartsAt: tuesday(10), EndsAt: tuesday(12),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		MechanicID: 7, StartsAt: tuesday(12), EndsAt: tuesday(14),
	})
	assert.NoError(t, err)
}

func TestExecute_MechanicNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeBookingStore(), &fakeServiceStore{}, &fakeReconciler{})

	_, err := uc.Execute(context.Background(), &Request{
		MechanicID: 99,
		StartsAt:   tuesday(10),
		EndsAt:     tuesday(12),
	})
	assert.ErrorIs(t, err, ErrMechanicNotFound)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(newFakeBookingStore(), &fakeServiceStore{}, &fakeReconciler{})

	_, err := uc.Execute(context.Background(), &Request{
		MechanicID: 7,
		StartsAt:   tuesday(12),
		EndsAt:     tuesday(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

// Concurrent requests for one mechanic with overlapping intervals: at
// most one of each overlapping pair may land, and the final active set
// must be pairwise non-overlapping.
func TestExecute_ConcurrentRequestsNeverDoubleBook(t *testing.T) {
	bookings := newFakeBookingStore()
	uc := newTestUseCase(bookings, &fakeServiceStore{}, &fakeReconciler{})

	// 20 requests over staggered, heavily overlapping 2h slots
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			start := tuesday(8).Add(time.Duration(offset*30) * time.Minute)
			_, err := uc.Execute(context.Background(), &Request{
				MechanicID: 7,
				StartsAt:   start,
				EndsAt:     start.Add(2 * time.Hour),
			})
			if err != nil {
				// overlap rejections are expected, anything else is not
				if !errors.Is(err, scheduling.ErrConflict) && !errors.Is(err, scheduling.ErrOutsideWorkingHours) {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	final, err := bookings.GetByMechanicWithFilter(context.Background(), domain.MechanicBookingsFilter{
		MechanicID: 7,
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, final)

	for i := 0; i < len(final); i++ {
		for j := i + 1; j < len(final); j++ {
			assert.False(t, final[i].Interval.Overlaps(final[j].Interval),
				"bookings %d and %d overlap: %s vs %s",
				final[i].ID, final[j].ID, final[i].Interval, final[j].Interval)
		}
	}
}
