package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	recordPayment "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_payment"
)

const (
	msgInvalidInvoiceID   = "invalid invoice ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid input data"
	msgNotFound           = "invoice not found"
	msgInvoiceClosed      = "invoice is closed"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/invoices/{invoiceId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	invoiceID, err := strconv.ParseInt(vars["invoiceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /invoices/{id}/payments - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recordPayment.Request{
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /invoices/{id}/payments - Invalid input: invoice_id=%d, error=%v", invoiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, recordPayment.ErrInvoiceNotFound):
			h.logger.Warn("POST /invoices/{id}/payments - Invoice not found: invoice_id=%d", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recordPayment.ErrInvoiceClosed):
			h.logger.Warn("POST /invoices/{id}/payments - Invoice closed: invoice_id=%d", invoiceID)
			handlers.RespondError(w, http.StatusConflict, msgInvoiceClosed)

		default:
			h.logger.Error("POST /invoices/{id}/payments - Failed: invoice_id=%d, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices/{id}/payments - Payment recorded: invoice_id=%d, status=%s",
		result.InvoiceID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
