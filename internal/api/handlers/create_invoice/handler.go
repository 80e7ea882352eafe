package create_invoice

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	createInvoice "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_invoice"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidInput        = "invalid input data"
	msgServiceNotFound     = "service not found"
	msgServiceNotCompleted = "service is not completed"
)

type Handler struct {
	useCase CreateInvoiceUseCase
	logger  Logger
}

func NewHandler(useCase CreateInvoiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createInvoice.ErrInvalidInput):
			h.logger.Warn("POST /invoices - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createInvoice.ErrServiceNotFound):
			h.logger.Warn("POST /invoices - Service not found: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createInvoice.ErrServiceNotCompleted):
			h.logger.Warn("POST /invoices - Service not completed: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondError(w, http.StatusConflict, msgServiceNotCompleted)

		default:
			h.logger.Error("POST /invoices - Failed to create invoice: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices - Invoice created: invoice_id=%d, client_id=%d, total=%.2f",
		result.InvoiceID, result.ClientID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
