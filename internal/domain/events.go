package domain

// CascadeEvent names a service lifecycle transition that must be
// propagated to related aggregates.
type CascadeEvent string

const (
	// EventServiceOpened fires when a new pending service is created.
	EventServiceOpened CascadeEvent = "service_opened"
	// EventServiceCompleted fires on the transition to completed.
	EventServiceCompleted CascadeEvent = "service_completed"
	// EventServiceCancelled fires on the transition to cancelled.
	EventServiceCancelled CascadeEvent = "service_cancelled"
)

// ServiceCascade carries a cascade event to the reconcilers.
type ServiceCascade struct {
	Event     CascadeEvent
	ServiceID int64
	VehicleID int64
}
