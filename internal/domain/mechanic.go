package domain

import "time"

// MechanicStatus represents the status of a mechanic
type MechanicStatus string

const (
	MechanicStatusActive   MechanicStatus = "active"
	MechanicStatusInactive MechanicStatus = "inactive"
	MechanicStatusOnLeave  MechanicStatus = "on_leave"
)

// DaySchedule describes the working hours of a single weekday.
// A closed day has IsOpen = false and nil times.
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *string // "HH:MM"
	CloseTime *string // "HH:MM"
}

// WeeklySchedule holds one DaySchedule per weekday.
type WeeklySchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday returns the schedule configured for the given weekday.
func (w WeeklySchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// IsZero reports whether no weekday has configured hours, in which case
// the global policy window applies.
func (w WeeklySchedule) IsZero() bool {
	for _, d := range []DaySchedule{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday} {
		if d.IsOpen {
			return false
		}
	}
	return true
}

// Mechanic represents a workshop mechanic.
// Mechanics in on_leave/inactive status accept no new bookings, but their
// existing bookings remain visible for reporting.
type Mechanic struct {
	ID                    int64
	Name                  string
	Status                MechanicStatus
	MaxConcurrentServices int
	WorkingHours          WeeklySchedule
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AcceptsBookings returns true if new bookings may be assigned.
func (m *Mechanic) AcceptsBookings() bool {
	return m.Status == MechanicStatusActive
}

// ConcurrencyLimit returns MaxConcurrentServices clamped into the allowed
// range, falling back to the policy default when unset.
func (m *Mechanic) ConcurrencyLimit() int {
	limit := m.MaxConcurrentServices
	if limit == 0 {
		return DefaultMaxConcurrentServices
	}
	if limit < MinConcurrentServices {
		return MinConcurrentServices
	}
	if limit > MaxConcurrentServices {
		return MaxConcurrentServices
	}
	return limit
}
