package scheduling

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

var (
	// ErrOutsideWorkingHours is returned when the proposed interval falls
	// outside the mechanic's configured working hours (or the global
	// policy window when none are configured).
	ErrOutsideWorkingHours = errors.New("scheduling: interval outside working hours")

	// ErrConflict is returned when the proposed interval overlaps an
	// active booking. The concrete error is a *ConflictError carrying the
	// blocking booking, matchable with errors.Is(err, ErrConflict).
	ErrConflict = errors.New("scheduling: interval conflicts with an active booking")

	// ErrCapacityExceeded is returned when the mechanic is already at the
	// maximum number of concurrent services.
	ErrCapacityExceeded = errors.New("scheduling: mechanic capacity exceeded")

	// ErrMechanicUnavailable is returned when the mechanic is inactive or
	// on leave and accepts no new bookings.
	ErrMechanicUnavailable = errors.New("scheduling: mechanic does not accept bookings")
)

// ConflictError carries the id and interval of the booking that blocks
// the proposed one, so callers can offer alternatives.
type ConflictError struct {
	BookingID int64
	Interval  domain.TimeInterval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: booking id=%d at %s", ErrConflict, e.BookingID, e.Interval)
}

// Unwrap lets errors.Is(err, ErrConflict) match a *ConflictError.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
