package create_invoice

import (
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	createInvoice "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_invoice"
)

// CreateInvoiceRequest HTTP request model
type CreateInvoiceRequest struct {
	ClientID   int64   `json:"clientId"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// LineItemResponse HTTP response model
type LineItemResponse struct {
	ServiceID   int64   `json:"serviceId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// InvoiceResponse HTTP response model
type InvoiceResponse struct {
	ID        int64              `json:"id"`
	ClientID  int64              `json:"clientId"`
	LineItems []LineItemResponse `json:"lineItems"`
	Subtotal  float64            `json:"subtotal"`
	TaxRate   float64            `json:"taxRate"`
	Total     float64            `json:"total"`
	DueDate   string             `json:"dueDate"`
	Status    string             `json:"status"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateInvoiceRequest) ToUseCaseRequest() *createInvoice.Request {
	return &createInvoice.Request{
		ClientID:   r.ClientID,
		ServiceIDs: r.ServiceIDs,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createInvoice.Response) *InvoiceResponse {
	items := make([]LineItemResponse, 0, len(resp.LineItems))
	for _, item := range resp.LineItems {
		items = append(items, LineItemResponse{
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	return &InvoiceResponse{
		ID:        resp.InvoiceID,
		ClientID:  resp.ClientID,
		LineItems: items,
		Subtotal:  resp.Subtotal,
		TaxRate:   resp.TaxRate,
		Total:     resp.Total,
		DueDate:   resp.DueDate.Format(domain.DateFormat),
		Status:    resp.Status,
	}
}
