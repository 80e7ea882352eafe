package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// Service handles booking reads and the unconditional status transitions
// (start, complete, cancel). Creating and rescheduling bookings go through
// the scheduling use cases, which gate every commit on the availability
// checker.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService creates a new bookings service.
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID returns one booking.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetMechanicBookings returns a mechanic's bookings for calendar
// rendering. Purely informational: no locks, stale-tolerant.
func (s *Service) GetMechanicBookings(ctx context.Context, req *models.GetMechanicBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMechanicBookings: mechanic=%d", req.MechanicID)

	filter := domain.MechanicBookingsFilter{
		MechanicID: req.MechanicID,
		From:       req.From,
		To:         req.To,
		ActiveOnly: !req.IncludeInactive,
	}

	if req.Status != nil {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetMechanicBookings: invalid status=%s for mechanic=%d", *req.Status, req.MechanicID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
		filter.ActiveOnly = false
	}

	bookings, err := s.bookingRepo.GetByMechanicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMechanicBookings: repository error for mechanic=%d: %v", req.MechanicID, err)
		return nil, fmt.Errorf("%w: GetMechanicBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetMechanicBookings: fetched %d bookings for mechanic=%d", len(bookings), req.MechanicID)
	return models.FromDomainBookingList(bookings), nil
}

// Start moves a booking to in_progress, confirming the schedule.
func (s *Service) Start(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.BookingStatusInProgress)
}

// Complete moves a booking to completed.
func (s *Service) Complete(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.BookingStatusCompleted)
}

// Cancel cancels a booking with a reason. The row is kept for audit
// history.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	// Cancelling an already cancelled booking is a retry-tolerant no-op
	if booking.Status == domain.BookingStatusCancelled {
		return nil
	}
	if booking.IsTerminal() {
		s.logger.Warn("Cancel: booking id=%d already terminal, status=%s", id, booking.Status)
		return ErrAlreadyFinal
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.Reason); err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// transition applies an unconditional status transition; terminal states
// never re-open, and re-applying the current status is a no-op.
func (s *Service) transition(ctx context.Context, id int64, target domain.BookingStatus) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("transition: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: transition - repository error: %w", ErrInternal, err)
	}

	if booking.Status == target {
		return nil
	}
	if booking.IsTerminal() {
		s.logger.Warn("transition: booking id=%d already terminal, status=%s", id, booking.Status)
		return ErrAlreadyFinal
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, target); err != nil {
		s.logger.Error("transition: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: transition - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("transition: booking id=%d moved to status=%s", id, target)
	return nil
}
