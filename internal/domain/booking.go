package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking represents a scheduled occupation of a mechanic's calendar.
// Bookings are never physically deleted: cancellation is a status, which
// preserves the audit history.
type Booking struct {
	ID         int64
	MechanicID int64
	Interval   TimeInterval
	Status     BookingStatus

	// ServiceID links the booking to the service ticket that owns it,
	// nil for standalone calendar events.
	ServiceID *int64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in conflict checks.
// Completed and cancelled bookings are inert history.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusInProgress
}

// IsTerminal returns true if the booking reached a final state.
// Terminal states never re-open.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsConfirmed returns true once scheduling has been confirmed, i.e. the
// booking is in progress or already finished.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusInProgress || b.Status == BookingStatusCompleted
}

// MechanicBookingsFilter filters bookings of one mechanic.
type MechanicBookingsFilter struct {
	MechanicID int64
	From       *time.Time // period start, nil = unbounded
	To         *time.Time // period end, nil = unbounded
	Status     *BookingStatus
	ActiveOnly bool // keep only pending/in_progress rows
}
