package schedule_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	mechanicRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
	"github.com/m04kA/SMC-WorkshopService/internal/service/vehicles"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

// UseCase schedules an event on a mechanic's calendar, optionally opening
// the service ticket that owns the booking in the same transaction.
type UseCase struct {
	bookingRepo       BookingRepository
	mechanicRepo      MechanicRepository
	serviceRepo       ServiceRepository
	vehicleReconciler VehicleReconciler
	txManager         TransactionManager
	logger            Logger
}

// NewUseCase creates a new schedule_event use case.
func NewUseCase(
	bookingRepo BookingRepository,
	mechanicRepo MechanicRepository,
	serviceRepo ServiceRepository,
	vehicleReconciler VehicleReconciler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:       bookingRepo,
		mechanicRepo:      mechanicRepo,
		serviceRepo:       serviceRepo,
		vehicleReconciler: vehicleReconciler,
		txManager:         txManager,
		logger:            logger,
	}
}

// Execute runs the admit-then-commit sequence inside a serializable
// transaction: the mechanic's active bookings are locked, the
// availability checker decides, and only on admission is any state
// written. A rejection leaves no partial state behind: no booking row,
// no service, no vehicle update.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleEvent: mechanic=%d, interval=[%s, %s)",
		req.MechanicID, req.StartsAt.Format(timeLayout), req.EndsAt.Format(timeLayout))

	// Input validation, including the start < end invariant, happens
	// before any lookup
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleEvent: validation failed: %v", err)
		return nil, err
	}

	interval := domain.TimeInterval{Start: req.StartsAt.UTC(), End: req.EndsAt.UTC()}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		mechanic, err := uc.mechanicRepo.GetByID(txCtx, req.MechanicID)
		if err != nil {
			if errors.Is(err, mechanicRepo.ErrMechanicNotFound) {
				uc.logger.Warn("ScheduleEvent: mechanic id=%d not found", req.MechanicID)
				return ErrMechanicNotFound
			}
			uc.logger.Error("ScheduleEvent: failed to get mechanic id=%d: %v", req.MechanicID, err)
			return fmt.Errorf("%w: failed to get mechanic: %w", ErrInternal, err)
		}

		// Lock the mechanic's active bookings (FOR UPDATE) so two
		// concurrent requests for the same mechanic serialize here
		activeBookings, err := uc.bookingRepo.GetByMechanicWithFilter(txCtx, domain.MechanicBookingsFilter{
			MechanicID: req.MechanicID,
			ActiveOnly: true,
		})
		if err != nil {
			uc.logger.Error("ScheduleEvent: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %w", ErrInternal, err)
		}

		// Pure decision gate; rejection reasons surface unchanged
		if err := scheduling.CheckAvailability(mechanic, interval, activeBookings, nil); err != nil {
			uc.logger.Warn("ScheduleEvent: rejected for mechanic=%d: %v", req.MechanicID, err)
			return err
		}

		booking := &domain.Booking{
			MechanicID: req.MechanicID,
			Interval:   interval,
			Status:     domain.BookingStatusPending,
			Notes:      req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Losing the commit-time race is indistinguishable from an
			// up-front conflict for the caller
			if errors.Is(err, bookingRepo.ErrOverlapConstraint) {
				uc.logger.Warn("ScheduleEvent: lost scheduling race for mechanic=%d", req.MechanicID)
				return fmt.Errorf("%w: booking rejected at commit", scheduling.ErrConflict)
			}
			uc.logger.Error("ScheduleEvent: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = &Response{
			BookingID:  created.ID,
			MechanicID: created.MechanicID,
			StartsAt:   created.Interval.Start,
			EndsAt:     created.Interval.End,
			Status:     string(created.Status),
			CreatedAt:  created.CreatedAt,
		}

		if req.Service == nil {
			return nil
		}

		svc, err := uc.createService(txCtx, req, created)
		if err != nil {
			return err
		}

		result.ServiceID = ptr.Ptr(svc.ID)
		result.TotalCost = ptr.Ptr(svc.TotalCost)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScheduleEvent: created booking id=%d for mechanic=%d", result.BookingID, result.MechanicID)
	return result, nil
}

// createService opens the pending service ticket owning the booking and
// cascades the vehicle into maintenance, all inside the caller's
// transaction.
func (uc *UseCase) createService(ctx context.Context, req *Request, booking *domain.Booking) (*domain.Service, error) {
	parts := make([]*domain.ServicePart, len(req.Service.Parts))
	for i, p := range req.Service.Parts {
		parts[i] = &domain.ServicePart{
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Available: p.Available,
		}
	}

	svc := &domain.Service{
		VehicleID:   req.Service.VehicleID,
		MechanicID:  req.MechanicID,
		BookingID:   booking.ID,
		Interval:    booking.Interval,
		Status:      domain.ServiceStatusPending,
		Description: req.Service.Description,
		LaborHours:  req.Service.LaborHours,
		HourlyRate:  req.Service.HourlyRate,
		Parts:       parts,
	}
	svc.RecomputeCosts()

	created, err := uc.serviceRepo.Create(ctx, svc)
	if err != nil {
		uc.logger.Error("ScheduleEvent: failed to create service: %v", err)
		return nil, fmt.Errorf("%w: failed to create service: %w", ErrInternal, err)
	}

	if err := uc.bookingRepo.SetServiceID(ctx, booking.ID, created.ID); err != nil {
		uc.logger.Error("ScheduleEvent: failed to bind booking id=%d to service id=%d: %v", booking.ID, created.ID, err)
		return nil, fmt.Errorf("%w: failed to bind booking to service: %w", ErrInternal, err)
	}

	cascade := domain.ServiceCascade{
		Event:     domain.EventServiceOpened,
		ServiceID: created.ID,
		VehicleID: created.VehicleID,
	}
	if err := uc.vehicleReconciler.OnServiceCascade(ctx, cascade); err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			uc.logger.Warn("ScheduleEvent: vehicle id=%d not found", created.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("ScheduleEvent: vehicle cascade failed for vehicle=%d: %v", created.VehicleID, err)
		return nil, fmt.Errorf("%w: vehicle cascade failed: %w", ErrInternal, err)
	}

	return created, nil
}
