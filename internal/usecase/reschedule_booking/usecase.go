package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	mechanicRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
)

// Request moves an existing booking to a new interval.
type Request struct {
	BookingID int64
	StartsAt  time.Time
	EndsAt    time.Time
}

// Response is the booking after the move.
type Response struct {
	BookingID  int64
	MechanicID int64
	ServiceID  *int64
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
}

// UseCase re-validates an edited booking against the mechanic's calendar,
// excluding the booking itself, and commits the new interval only on
// admission.
type UseCase struct {
	bookingRepo  BookingRepository
	mechanicRepo MechanicRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase creates a new reschedule_booking use case.
func NewUseCase(
	bookingRepo BookingRepository,
	mechanicRepo MechanicRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		mechanicRepo: mechanicRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute runs the reschedule inside a serializable transaction. The
// availability check excludes the booking being moved so it does not
// conflict with itself.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	interval := domain.TimeInterval{Start: req.StartsAt.UTC(), End: req.EndsAt.UTC()}
	if err := interval.Validate(); err != nil {
		uc.logger.Warn("RescheduleBooking: invalid interval for booking=%d: %v", req.BookingID, err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.IsActive() {
			uc.logger.Warn("RescheduleBooking: booking id=%d is %s", booking.ID, booking.Status)
			return ErrBookingNotActive
		}

		mechanic, err := uc.mechanicRepo.GetByID(txCtx, booking.MechanicID)
		if err != nil {
			if errors.Is(err, mechanicRepo.ErrMechanicNotFound) {
				return ErrMechanicNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get mechanic id=%d: %v", booking.MechanicID, err)
			return fmt.Errorf("%w: failed to get mechanic: %w", ErrInternal, err)
		}

		activeBookings, err := uc.bookingRepo.GetByMechanicWithFilter(txCtx, domain.MechanicBookingsFilter{
			MechanicID: booking.MechanicID,
			ActiveOnly: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %w", ErrInternal, err)
		}

		if err := scheduling.CheckAvailability(mechanic, interval, activeBookings, &booking.ID); err != nil {
			uc.logger.Warn("RescheduleBooking: rejected for booking=%d: %v", booking.ID, err)
			return err
		}

		if err := uc.bookingRepo.UpdateInterval(txCtx, booking.ID, interval); err != nil {
			if errors.Is(err, bookingRepo.ErrOverlapConstraint) {
				uc.logger.Warn("RescheduleBooking: lost scheduling race for booking=%d", booking.ID)
				return fmt.Errorf("%w: reschedule rejected at commit", scheduling.ErrConflict)
			}
			uc.logger.Error("RescheduleBooking: failed to update interval for booking=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update interval: %w", ErrInternal, err)
		}

		// A service-bound booking carries the interval for its service
		// too; move both in the same transaction.
		if booking.ServiceID != nil {
			if err := uc.serviceRepo.UpdateInterval(txCtx, *booking.ServiceID, interval); err != nil {
				uc.logger.Error("RescheduleBooking: failed to update service interval for service=%d: %v",
					*booking.ServiceID, err)
				return fmt.Errorf("%w: failed to update service interval: %w", ErrInternal, err)
			}
		}

		result = &Response{
			BookingID:  booking.ID,
			MechanicID: booking.MechanicID,
			ServiceID:  booking.ServiceID,
			StartsAt:   interval.Start,
			EndsAt:     interval.End,
			Status:     string(booking.Status),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to [%s, %s)",
		result.BookingID, result.StartsAt.Format(time.RFC3339), result.EndsAt.Format(time.RFC3339))
	return result, nil
}
