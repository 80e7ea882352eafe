package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	MechanicID int64  `json:"mechanicId"`
	ServiceID  *int64 `json:"serviceId,omitempty"`
	StartsAt   string `json:"startsAt"`
	EndsAt     string `json:"endsAt"`
	Status     string `json:"status"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.BookingID,
		MechanicID: resp.MechanicID,
		ServiceID:  resp.ServiceID,
		StartsAt:   resp.StartsAt.Format(time.RFC3339),
		EndsAt:     resp.EndsAt.Format(time.RFC3339),
		Status:     resp.Status,
	}
}
