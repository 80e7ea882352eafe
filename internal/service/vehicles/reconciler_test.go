package vehicles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/vehicle"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeServiceStore struct {
	openByVehicle map[int64]int
}

func (s *fakeServiceStore) CountOpenByVehicle(_ context.Context, vehicleID int64) (int, error) {
	return s.openByVehicle[vehicleID], nil
}

type fakeVehicleStore struct {
	statuses map[int64]domain.VehicleStatus
}

func (s *fakeVehicleStore) UpdateStatus(_ context.Context, id int64, status domain.VehicleStatus) error {
	if _, ok := s.statuses[id]; !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	s.statuses[id] = status
	return nil
}

func newFixture(openServices int) (*Reconciler, *fakeServiceStore, *fakeVehicleStore) {
	services := &fakeServiceStore{openByVehicle: map[int64]int{3: openServices}}
	vehicles := &fakeVehicleStore{statuses: map[int64]domain.VehicleStatus{3: domain.VehicleStatusActive}}
	return NewReconciler(services, vehicles, nopLogger{}), services, vehicles
}

func TestOnServiceCascade_OpenedPutsVehicleInMaintenance(t *testing.T) {
	r, _, vehicles := newFixture(1)

	err := r.OnServiceCascade(context.Background(), domain.ServiceCascade{
		Event:     domain.EventServiceOpened,
		ServiceID: 1,
		VehicleID: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusInMaintenance, vehicles.statuses[3])
}

// A vehicle with two open services stays in maintenance when the first
// completes and returns to active only when the last one closes.
func TestOnServiceCascade_CompletionRecomputesFromFullSet(t *testing.T) {
	r, services, vehicles := newFixture(2)
	vehicles.statuses[3] = domain.VehicleStatusInMaintenance

	// first service completes, one still open
	services.openByVehicle[3] = 1
	err := r.OnServiceCascade(context.Background(), domain.ServiceCascade{
		Event:     domain.EventServiceCompleted,
		ServiceID: 1,
		VehicleID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusInMaintenance, vehicles.statuses[3])

	// second service completes, none left
	services.openByVehicle[3] = 0
	err = r.OnServiceCascade(context.Background(), domain.ServiceCascade{
		Event:     domain.EventServiceCompleted,
		ServiceID: 2,
		VehicleID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusActive, vehicles.statuses[3])
}

func TestOnServiceCascade_CancellationReleasesVehicle(t *testing.T) {
	r, services, vehicles := newFixture(1)
	vehicles.statuses[3] = domain.VehicleStatusInMaintenance

	services.openByVehicle[3] = 0
	err := r.OnServiceCascade(context.Background(), domain.ServiceCascade{
		Event:     domain.EventServiceCancelled,
		ServiceID: 1,
		VehicleID: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusActive, vehicles.statuses[3])
}

// Re-delivering the same cascade is harmless: the recomputation lands on
// the same derived status.
func TestReconcile_Idempotent(t *testing.T) {
	r, services, vehicles := newFixture(0)
	services.openByVehicle[3] = 0

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Reconcile(context.Background(), 3))
		assert.Equal(t, domain.VehicleStatusActive, vehicles.statuses[3])
	}
}

func TestReconcile_VehicleNotFound(t *testing.T) {
	r, _, _ := newFixture(0)

	err := r.Reconcile(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
