package record_payment

import (
	"time"

	recordPayment "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	InvoiceID int64   `json:"invoiceId"`
	PaymentID int64   `json:"paymentId"`
	Total     float64 `json:"total"`
	SumPaid   float64 `json:"sumPaid"`
	Status    string  `json:"status"`
	PaidAt    string  `json:"paidAt"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		InvoiceID: resp.InvoiceID,
		PaymentID: resp.PaymentID,
		Total:     resp.Total,
		SumPaid:   resp.SumPaid,
		Status:    resp.Status,
		PaidAt:    resp.PaidAt.Format(time.RFC3339),
	}
}
