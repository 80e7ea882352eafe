// Package vehicles derives the vehicle maintenance flag from the current
// set of the vehicle's services. The flag is never decremented or set at
// call sites: every cascade triggers a full recomputation, which keeps
// the derivation correct under out-of-order delivery and makes repeated
// cascades idempotent.
package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/vehicle"
)

// Reconciler recomputes vehicle status from the vehicle's open services.
type Reconciler struct {
	serviceRepo ServiceRepository
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewReconciler creates a new vehicle reconciler.
func NewReconciler(serviceRepo ServiceRepository, vehicleRepo VehicleRepository, logger Logger) *Reconciler {
	return &Reconciler{
		serviceRepo: serviceRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// OnServiceCascade applies a service lifecycle cascade to the vehicle.
// A newly opened service puts the vehicle in maintenance unconditionally;
// completion and cancellation trigger a recomputation from the full
// active-service set.
func (r *Reconciler) OnServiceCascade(ctx context.Context, cascade domain.ServiceCascade) error {
	switch cascade.Event {
	case domain.EventServiceOpened:
		return r.setStatus(ctx, cascade.VehicleID, domain.VehicleStatusInMaintenance)
	case domain.EventServiceCompleted, domain.EventServiceCancelled:
		return r.Reconcile(ctx, cascade.VehicleID)
	default:
		r.logger.Warn("OnServiceCascade: unknown event %q for vehicle=%d", cascade.Event, cascade.VehicleID)
		return nil
	}
}

// Reconcile re-derives the vehicle status: in_maintenance iff at least
// one service is still open, otherwise active.
func (r *Reconciler) Reconcile(ctx context.Context, vehicleID int64) error {
	openCount, err := r.serviceRepo.CountOpenByVehicle(ctx, vehicleID)
	if err != nil {
		r.logger.Error("Reconcile: failed to count open services for vehicle=%d: %v", vehicleID, err)
		return fmt.Errorf("%w: Reconcile - count open services: %w", ErrInternal, err)
	}

	status := domain.VehicleStatusActive
	if openCount > 0 {
		status = domain.VehicleStatusInMaintenance
	}

	r.logger.Info("Reconcile: vehicle=%d has %d open services, status=%s", vehicleID, openCount, status)
	return r.setStatus(ctx, vehicleID, status)
}

func (r *Reconciler) setStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) error {
	if err := r.vehicleRepo.UpdateStatus(ctx, vehicleID, status); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			r.logger.Warn("setStatus: vehicle=%d not found", vehicleID)
			return ErrVehicleNotFound
		}
		r.logger.Error("setStatus: failed to update vehicle=%d: %v", vehicleID, err)
		return fmt.Errorf("%w: setStatus - update vehicle: %w", ErrInternal, err)
	}
	return nil
}
