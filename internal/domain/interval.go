package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval's start is not strictly
// before its end.
var ErrInvalidInterval = errors.New("domain: interval start must be before end")

// TimeInterval is a half-open time range [Start, End) in UTC.
// An interval ending exactly when another begins does not overlap it,
// so back-to-back bookings are allowed.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds a validated interval with both instants in UTC.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	i := TimeInterval{Start: start.UTC(), End: end.UTC()}
	if err := i.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return i, nil
}

// Validate checks the Start < End invariant.
func (i TimeInterval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInterval)
	}
	if !i.Start.Before(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether the instant t falls within [Start, End).
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
