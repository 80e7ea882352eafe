package schedule_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduling"
	scheduleEvent "github.com/m04kA/SMC-WorkshopService/internal/usecase/schedule_event"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidInterval     = "invalid time interval, end must be after start"
	msgInvalidInput        = "invalid input data"
	msgMechanicNotFound    = "mechanic not found"
	msgVehicleNotFound     = "vehicle not found"
	msgMechanicUnavailable = "mechanic does not accept bookings"
	msgOutsideWorkingHours = "interval is outside working hours"
	msgConflict            = "interval conflicts with an existing booking"
	msgCapacityExceeded    = "mechanic is fully booked at that time"
)

type Handler struct {
	useCase ScheduleEventUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: mechanic_id=%d, error=%v", req.MechanicID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, scheduleEvent.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: mechanic_id=%d, error=%v", req.MechanicID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduleEvent.ErrMechanicNotFound):
			h.logger.Warn("POST /bookings - Mechanic not found: mechanic_id=%d", req.MechanicID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, scheduleEvent.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: mechanic_id=%d", req.MechanicID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, scheduling.ErrMechanicUnavailable):
			h.logger.Warn("POST /bookings - Mechanic unavailable: mechanic_id=%d", req.MechanicID)
			handlers.RespondError(w, http.StatusConflict, msgMechanicUnavailable)

		case errors.Is(err, scheduling.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: mechanic_id=%d", req.MechanicID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, scheduling.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: mechanic_id=%d, error=%v", req.MechanicID, err)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, scheduling.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: mechanic_id=%d", req.MechanicID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /bookings - Failed to schedule event: mechanic_id=%d, error=%v", req.MechanicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Event scheduled: booking_id=%d, mechanic_id=%d", result.BookingID, result.MechanicID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
