package domain

import "time"

// VehicleStatus represents the status of a vehicle
type VehicleStatus string

const (
	VehicleStatusActive        VehicleStatus = "active"
	VehicleStatusInactive      VehicleStatus = "inactive"
	VehicleStatusInMaintenance VehicleStatus = "in_maintenance"
)

// Vehicle represents a client's vehicle.
// The in_maintenance status is derived: a vehicle is in_maintenance if
// and only if it has at least one open service. It is recomputed by the
// vehicle reconciler and never set independently.
type Vehicle struct {
	ID           int64
	ClientID     int64
	LicensePlate string
	Brand        *string
	Model        *string
	Status       VehicleStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InMaintenance returns true while at least one service keeps the vehicle
// in the workshop.
func (v *Vehicle) InMaintenance() bool {
	return v.Status == VehicleStatusInMaintenance
}
