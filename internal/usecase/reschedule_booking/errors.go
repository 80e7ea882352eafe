package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotActive is returned when a terminal booking is being
	// rescheduled; completed and cancelled bookings are inert history
	ErrBookingNotActive = errors.New("reschedule_booking: booking is not active")

	// ErrMechanicNotFound is returned when the mechanic no longer exists
	ErrMechanicNotFound = errors.New("reschedule_booking: mechanic not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("reschedule_booking: internal error")
)
