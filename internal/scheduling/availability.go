// Package scheduling holds the pure admission logic for the mechanic
// calendar: the availability checker and the capacity gate. No function
// here performs I/O; callers fetch the mechanic and their active bookings
// first and commit only on admission.
package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// CheckAvailability decides whether the proposed interval may be assigned
// to the mechanic. excludeBookingID skips one booking from the checks,
// used when re-validating an edit of an existing booking against itself.
//
// Rejections, in checking order:
//   - domain.ErrInvalidInterval: start >= end, rejected before any lookup
//   - ErrMechanicUnavailable: mechanic is inactive or on leave
//   - ErrOutsideWorkingHours: interval outside configured/policy hours
//   - *ConflictError: half-open overlap with an active booking; exact
//     back-to-back bookings (end == start) are allowed
//   - ErrCapacityExceeded: capacity gate rejected the start instant
func CheckAvailability(mechanic *domain.Mechanic, interval domain.TimeInterval, activeBookings []*domain.Booking, excludeBookingID *int64) error {
	if err := interval.Validate(); err != nil {
		return err
	}

	if !mechanic.AcceptsBookings() {
		return ErrMechanicUnavailable
	}

	if err := checkWorkingHours(mechanic.WorkingHours, interval); err != nil {
		return err
	}

	for _, booking := range activeBookings {
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		if !booking.IsActive() {
			continue
		}
		if booking.Interval.Overlaps(interval) {
			return &ConflictError{BookingID: booking.ID, Interval: booking.Interval}
		}
	}

	if !HasCapacity(mechanic, interval.Start, activeBookings, excludeBookingID) {
		return ErrCapacityExceeded
	}

	return nil
}

// checkWorkingHours verifies that every daily segment of the interval
// lies within that day's working hours. A mechanic without configured
// hours gets the global policy window on every day.
func checkWorkingHours(schedule domain.WeeklySchedule, interval domain.TimeInterval) error {
	usePolicyWindow := schedule.IsZero()

	for day := startOfDay(interval.Start); day.Before(interval.End); day = day.AddDate(0, 0, 1) {
		nextDay := day.AddDate(0, 0, 1)

		segStart := interval.Start
		if segStart.Before(day) {
			segStart = day
		}
		segEnd := interval.End
		if segEnd.After(nextDay) {
			segEnd = nextDay
		}

		var open, close string
		if usePolicyWindow {
			open, close = domain.DefaultWorkdayOpen, domain.DefaultWorkdayClose
		} else {
			sched := schedule.ForWeekday(day.Weekday())
			if !sched.IsOpen || sched.OpenTime == nil || sched.CloseTime == nil {
				return fmt.Errorf("%w: %s is a day off", ErrOutsideWorkingHours, day.Weekday())
			}
			open, close = *sched.OpenTime, *sched.CloseTime
		}

		openAt, err := instantAt(day, open)
		if err != nil {
			return err
		}
		closeAt, err := instantAt(day, close)
		if err != nil {
			return err
		}

		if segStart.Before(openAt) || segEnd.After(closeAt) {
			return fmt.Errorf("%w: %s not within %s-%s on %s",
				ErrOutsideWorkingHours, domain.TimeInterval{Start: segStart, End: segEnd},
				open, close, day.Format(domain.DateFormat))
		}
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// instantAt combines a day with an "HH:MM" wall-clock string.
func instantAt(day time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse(domain.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed working hours %q", ErrOutsideWorkingHours, hhmm)
	}
	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
}
