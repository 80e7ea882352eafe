package transition_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/service"
)

// Request asks for a service lifecycle transition.
type Request struct {
	ServiceID    int64
	TargetStatus string
}

// Response is the service after the transition (or the unchanged state
// for an idempotent retry).
type Response struct {
	ServiceID     int64
	VehicleID     int64
	BookingID     int64
	Status        string
	ActualEndTime *time.Time
	PartsCost     float64
	TotalCost     float64
}

// UseCase drives the service lifecycle and its cascades. The transition,
// the owned booking's status, and the vehicle reconciliation all commit
// in one serializable transaction, so no reader ever observes a
// completed service with its vehicle still in maintenance because of it.
type UseCase struct {
	serviceRepo       ServiceRepository
	bookingRepo       BookingRepository
	vehicleReconciler VehicleReconciler
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase creates a new transition_service use case.
func NewUseCase(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	vehicleReconciler VehicleReconciler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:       serviceRepo,
		bookingRepo:       bookingRepo,
		vehicleReconciler: vehicleReconciler,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute applies the requested transition. Re-entrant transitions
// (target == current status) are no-ops returning the current state, so
// retried requests are harmless and cascades never double-fire.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionService: service=%d, target=%s", req.ServiceID, req.TargetStatus)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if !domain.ValidServiceStatus(req.TargetStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}
	target := domain.ServiceStatus(req.TargetStatus)
	if target == domain.ServiceStatusPending {
		return nil, fmt.Errorf("%w: cannot transition back to pending", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		svc, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("TransitionService: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("TransitionService: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// Idempotent retry: already there, nothing to do
		if svc.Status == target {
			uc.logger.Info("TransitionService: service id=%d already %s", svc.ID, target)
			result = toResponse(svc)
			return nil
		}

		if !svc.CanTransition(target) {
			uc.logger.Warn("TransitionService: illegal transition %s -> %s for service id=%d",
				svc.Status, target, svc.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, svc.Status, target)
		}

		switch target {
		case domain.ServiceStatusInProgress:
			err = uc.start(txCtx, svc)
		case domain.ServiceStatusCompleted:
			err = uc.complete(txCtx, svc)
		case domain.ServiceStatusCancelled:
			err = uc.cancel(txCtx, svc)
		}
		if err != nil {
			return err
		}

		result = toResponse(svc)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionService: service id=%d now %s", result.ServiceID, result.Status)
	return result, nil
}

// start moves a pending service to in_progress. The bound booking must
// already be confirmed (in_progress or later); otherwise the caller got
// its ordering wrong.
func (uc *UseCase) start(ctx context.Context, svc *domain.Service) error {
	booking, err := uc.bookingRepo.GetByID(ctx, svc.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("TransitionService: booking id=%d of service id=%d missing", svc.BookingID, svc.ID)
			return fmt.Errorf("%w: owned booking missing", ErrInternal)
		}
		return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !booking.IsConfirmed() {
		uc.logger.Warn("TransitionService: service id=%d started before booking id=%d confirmed (status=%s)",
			svc.ID, booking.ID, booking.Status)
		return ErrNotScheduled
	}

	svc.Status = domain.ServiceStatusInProgress
	return uc.persist(ctx, svc, nil)
}

// complete finishes the service: freeze the actual end time, recompute
// the derived costs one final time, close the booking, cascade to the
// vehicle.
func (uc *UseCase) complete(ctx context.Context, svc *domain.Service) error {
	if svc.ActualEndTime == nil {
		now := uc.timeProvider.Now()
		svc.ActualEndTime = &now
	}
	svc.RecomputeCosts()
	svc.Status = domain.ServiceStatusCompleted

	if err := uc.persist(ctx, svc, svc.ActualEndTime); err != nil {
		return err
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, svc.BookingID, domain.BookingStatusCompleted); err != nil {
		uc.logger.Error("TransitionService: failed to complete booking id=%d: %v", svc.BookingID, err)
		return fmt.Errorf("%w: failed to complete booking: %w", ErrInternal, err)
	}

	return uc.cascade(ctx, svc, domain.EventServiceCompleted)
}

// cancel aborts the service, releases the booking and cascades to the
// vehicle.
func (uc *UseCase) cancel(ctx context.Context, svc *domain.Service) error {
	svc.Status = domain.ServiceStatusCancelled

	if err := uc.persist(ctx, svc, nil); err != nil {
		return err
	}

	if err := uc.bookingRepo.Cancel(ctx, svc.BookingID, "service cancelled"); err != nil {
		uc.logger.Error("TransitionService: failed to cancel booking id=%d: %v", svc.BookingID, err)
		return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
	}

	return uc.cascade(ctx, svc, domain.EventServiceCancelled)
}

func (uc *UseCase) persist(ctx context.Context, svc *domain.Service, actualEnd *time.Time) error {
	if err := uc.serviceRepo.UpdateStatus(ctx, svc.ID, svc.Status, actualEnd, svc.PartsCost, svc.TotalCost); err != nil {
		uc.logger.Error("TransitionService: failed to persist service id=%d: %v", svc.ID, err)
		return fmt.Errorf("%w: failed to persist service: %w", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) cascade(ctx context.Context, svc *domain.Service, event domain.CascadeEvent) error {
	cascade := domain.ServiceCascade{
		Event:     event,
		ServiceID: svc.ID,
		VehicleID: svc.VehicleID,
	}
	if err := uc.vehicleReconciler.OnServiceCascade(ctx, cascade); err != nil {
		uc.logger.Error("TransitionService: vehicle cascade failed for vehicle=%d: %v", svc.VehicleID, err)
		return fmt.Errorf("%w: vehicle cascade failed: %w", ErrInternal, err)
	}
	return nil
}

func toResponse(svc *domain.Service) *Response {
	return &Response{
		ServiceID:     svc.ID,
		VehicleID:     svc.VehicleID,
		BookingID:     svc.BookingID,
		Status:        string(svc.Status),
		ActualEndTime: svc.ActualEndTime,
		PartsCost:     svc.PartsCost,
		TotalCost:     svc.TotalCost,
	}
}
