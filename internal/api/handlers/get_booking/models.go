package get_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	MechanicID         int64   `json:"mechanicId"`
	ServiceID          *int64  `json:"serviceId,omitempty"`
	StartsAt           string  `json:"startsAt"`
	EndsAt             string  `json:"endsAt"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromServiceResponse converts the service model into the HTTP model.
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	out := &BookingResponse{
		ID:                 resp.ID,
		MechanicID:         resp.MechanicID,
		ServiceID:          resp.ServiceID,
		StartsAt:           resp.StartsAt.Format(time.RFC3339),
		EndsAt:             resp.EndsAt.Format(time.RFC3339),
		Status:             resp.Status,
		Notes:              resp.Notes,
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
