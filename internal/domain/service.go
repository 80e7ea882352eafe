package domain

import "time"

// ServiceStatus represents the status of a service ticket
type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusInProgress ServiceStatus = "in_progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"
)

// ServicePart is a part attached to a service with its quantity.
// Availability is checked per part, independently of the others.
type ServicePart struct {
	ID        int64
	ServiceID int64
	Name      string
	Quantity  int
	UnitPrice float64
	Available bool
}

// Cost returns the line cost of the part.
func (p *ServicePart) Cost() float64 {
	return float64(p.Quantity) * p.UnitPrice
}

// Service is a unit of mechanical work bound to one vehicle and one
// mechanic. It owns exactly one Booking for the interval it occupies the
// mechanic's calendar, and it exclusively owns its derived cost fields.
type Service struct {
	ID         int64
	VehicleID  int64
	MechanicID int64
	BookingID  int64

	Interval      TimeInterval // estimated start / estimated end
	ActualEndTime *time.Time
	Status        ServiceStatus

	Description string
	LaborHours  float64
	HourlyRate  float64
	PartsCost   float64 // derived from Parts, never hand-set
	TotalCost   float64 // derived = PartsCost + LaborHours*HourlyRate
	Parts       []*ServicePart

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true while the service keeps its vehicle in maintenance.
func (s *Service) IsOpen() bool {
	return s.Status == ServiceStatusPending || s.Status == ServiceStatusInProgress
}

// IsTerminal returns true if the service reached a final state.
func (s *Service) IsTerminal() bool {
	return s.Status == ServiceStatusCompleted || s.Status == ServiceStatusCancelled
}

// RecomputeCosts rederives PartsCost and TotalCost from the current parts
// and labor figures. Must be called whenever parts or labor change; the
// cost fields are never assigned directly anywhere else.
func (s *Service) RecomputeCosts() {
	s.PartsCost = 0
	for _, part := range s.Parts {
		s.PartsCost += part.Cost()
	}
	s.TotalCost = s.PartsCost + s.LaborHours*s.HourlyRate
}

// serviceTransitions enumerates the legal lifecycle edges:
// pending -> in_progress -> completed, cancelled reachable from
// pending and in_progress.
var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServiceStatusPending:    {ServiceStatusInProgress, ServiceStatusCancelled},
	ServiceStatusInProgress: {ServiceStatusCompleted, ServiceStatusCancelled},
	ServiceStatusCompleted:  {},
	ServiceStatusCancelled:  {},
}

// CanTransition reports whether the edge from the current status to
// target is legal. Re-entrant transitions (target == current status) are
// not edges but are tolerated as idempotent no-ops by the caller.
func (s *Service) CanTransition(target ServiceStatus) bool {
	for _, allowed := range serviceTransitions[s.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidServiceStatus reports whether the string names a known status.
func ValidServiceStatus(s string) bool {
	switch ServiceStatus(s) {
	case ServiceStatusPending, ServiceStatusInProgress, ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	default:
		return false
	}
}
