package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAlreadyFinal is returned when a terminal booking is asked to
	// move to a different terminal state; terminal states never re-open
	ErrAlreadyFinal = errors.New("bookings.service: booking is in a terminal state")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal is returned on unexpected repository failures
	ErrInternal = errors.New("bookings.service: internal error")
)
