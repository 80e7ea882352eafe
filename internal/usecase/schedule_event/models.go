package schedule_event

import (
	"time"
)

// PartPayload describes one part attached to the requested service.
type PartPayload struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Available bool
}

// ServicePayload describes the service ticket to open together with the
// booking. Nil on the request means a standalone calendar event.
type ServicePayload struct {
	VehicleID   int64
	Description string
	LaborHours  float64
	HourlyRate  float64
	Parts       []PartPayload
}

// Request asks for an interval on a mechanic's calendar.
type Request struct {
	MechanicID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Notes      *string
	Service    *ServicePayload
}

// Response is the committed booking, with the service id when one was
// opened in the same transaction.
type Response struct {
	BookingID  int64
	MechanicID int64
	ServiceID  *int64
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
	TotalCost  *float64
	CreatedAt  time.Time
}
