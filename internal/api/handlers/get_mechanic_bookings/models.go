package get_mechanic_bookings

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64   `json:"id"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	StartsAt  string  `json:"startsAt"`
	EndsAt    string  `json:"endsAt"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	MechanicID int64              `json:"mechanicId"`
	Bookings   []*BookingResponse `json:"bookings"`
}

// FromServiceResponse converts the service model into the HTTP model.
func FromServiceResponse(mechanicID int64, resp *models.BookingListResponse) *BookingListResponse {
	bookings := make([]*BookingResponse, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, &BookingResponse{
			ID:        b.ID,
			ServiceID: b.ServiceID,
			StartsAt:  b.StartsAt.Format(time.RFC3339),
			EndsAt:    b.EndsAt.Format(time.RFC3339),
			Status:    b.Status,
			Notes:     b.Notes,
		})
	}
	return &BookingListResponse{
		MechanicID: mechanicID,
		Bookings:   bookings,
	}
}
