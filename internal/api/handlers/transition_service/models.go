package transition_service

import (
	"time"

	transitionService "github.com/m04kA/SMC-WorkshopService/internal/usecase/transition_service"
)

// TransitionServiceRequest HTTP request model
type TransitionServiceRequest struct {
	Status string `json:"status"`
}

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID            int64   `json:"id"`
	VehicleID     int64   `json:"vehicleId"`
	BookingID     int64   `json:"bookingId"`
	Status        string  `json:"status"`
	ActualEndTime *string `json:"actualEndTime,omitempty"`
	PartsCost     float64 `json:"partsCost"`
	TotalCost     float64 `json:"totalCost"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *transitionService.Response) *ServiceResponse {
	out := &ServiceResponse{
		ID:        resp.ServiceID,
		VehicleID: resp.VehicleID,
		BookingID: resp.BookingID,
		Status:    resp.Status,
		PartsCost: resp.PartsCost,
		TotalCost: resp.TotalCost,
	}
	if resp.ActualEndTime != nil {
		actualEnd := resp.ActualEndTime.Format(time.RFC3339)
		out.ActualEndTime = &actualEnd
	}
	return out
}
