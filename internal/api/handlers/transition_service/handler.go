package transition_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	transitionService "github.com/m04kA/SMC-WorkshopService/internal/usecase/transition_service"
)

const (
	msgInvalidServiceID   = "invalid service ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "service not found"
	msgNotScheduled       = "booking is not confirmed yet"
	msgInvalidTransition  = "illegal lifecycle transition"
	msgInvalidInput       = "invalid input data"
)

type Handler struct {
	useCase TransitionServiceUseCase
	logger  Logger
}

func NewHandler(useCase TransitionServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/services/{serviceId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /services/{id}/status - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req TransitionServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /services/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionService.Request{
		ServiceID:    serviceID,
		TargetStatus: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionService.ErrInvalidInput):
			h.logger.Warn("PATCH /services/{id}/status - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, transitionService.ErrServiceNotFound):
			h.logger.Warn("PATCH /services/{id}/status - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionService.ErrNotScheduled):
			h.logger.Warn("PATCH /services/{id}/status - Not scheduled: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusConflict, msgNotScheduled)

		case errors.Is(err, transitionService.ErrInvalidTransition):
			h.logger.Warn("PATCH /services/{id}/status - Invalid transition: service_id=%d, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /services/{id}/status - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /services/{id}/status - Service transitioned: service_id=%d, status=%s",
		result.ServiceID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
