package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
	rescheduleBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "invalid booking ID"
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidInterval     = "invalid time interval, end must be after start"
	msgNotFound            = "booking not found"
	msgNotActive           = "booking is completed or cancelled"
	msgMechanicNotFound    = "mechanic not found"
	msgMechanicUnavailable = "mechanic does not accept bookings"
	msgOutsideWorkingHours = "interval is outside working hours"
	msgConflict            = "interval conflicts with an existing booking"
	msgCapacityExceeded    = "mechanic is fully booked at that time"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID: bookingID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid interval: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingNotActive):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not active: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotActive)

		case errors.Is(err, rescheduleBooking.ErrMechanicNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Mechanic not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, scheduling.ErrMechanicUnavailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Mechanic unavailable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgMechanicUnavailable)

		case errors.Is(err, scheduling.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside working hours: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, scheduling.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Conflict: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, scheduling.ErrCapacityExceeded):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Capacity exceeded: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
