package schedule_event

import (
	"time"

	scheduleEvent "github.com/m04kA/SMC-WorkshopService/internal/usecase/schedule_event"
)

// PartPayload is one part of the requested service.
type PartPayload struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Available bool    `json:"available"`
}

// ServicePayload is the optional service ticket opened with the booking.
type ServicePayload struct {
	VehicleID   int64         `json:"vehicleId"`
	Description string        `json:"description"`
	LaborHours  float64       `json:"laborHours"`
	HourlyRate  float64       `json:"hourlyRate"`
	Parts       []PartPayload `json:"parts,omitempty"`
}

// ScheduleEventRequest HTTP request model
type ScheduleEventRequest struct {
	MechanicID int64           `json:"mechanicId"`
	StartsAt   time.Time       `json:"startsAt"`
	EndsAt     time.Time       `json:"endsAt"`
	Notes      *string         `json:"notes,omitempty"`
	Service    *ServicePayload `json:"service,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64    `json:"id"`
	MechanicID int64    `json:"mechanicId"`
	ServiceID  *int64   `json:"serviceId,omitempty"`
	StartsAt   string   `json:"startsAt"`
	EndsAt     string   `json:"endsAt"`
	Status     string   `json:"status"`
	TotalCost  *float64 `json:"totalCost,omitempty"`
	CreatedAt  string   `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *ScheduleEventRequest) ToUseCaseRequest() *scheduleEvent.Request {
	req := &scheduleEvent.Request{
		MechanicID: r.MechanicID,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Notes:      r.Notes,
	}
	if r.Service != nil {
		parts := make([]scheduleEvent.PartPayload, 0, len(r.Service.Parts))
		for _, p := range r.Service.Parts {
			parts = append(parts, scheduleEvent.PartPayload{
				Name:      p.Name,
				Quantity:  p.Quantity,
				UnitPrice: p.UnitPrice,
				Available: p.Available,
			})
		}
		req.Service = &scheduleEvent.ServicePayload{
			VehicleID:   r.Service.VehicleID,
			Description: r.Service.Description,
			LaborHours:  r.Service.LaborHours,
			HourlyRate:  r.Service.HourlyRate,
			Parts:       parts,
		}
	}
	return req
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *scheduleEvent.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.BookingID,
		MechanicID: resp.MechanicID,
		ServiceID:  resp.ServiceID,
		StartsAt:   resp.StartsAt.Format(time.RFC3339),
		EndsAt:     resp.EndsAt.Format(time.RFC3339),
		Status:     resp.Status,
		TotalCost:  resp.TotalCost,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
