package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

func booking(id int64, status domain.BookingStatus, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:       id,
		Status:   status,
		Interval: domain.TimeInterval{Start: start, End: end},
	}
}

func TestCountConcurrent(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := day.Add(10 * time.Hour)

	bookings := []*domain.Booking{
		// contains the instant
		booking(1, domain.BookingStatusPending, day.Add(9*time.Hour), day.Add(11*time.Hour)),
		// starts exactly at the instant, half-open containment counts it
		booking(2, domain.BookingStatusInProgress, at, day.Add(12*time.Hour)),
		// ends exactly at the instant, not counted
		booking(3, domain.BookingStatusPending, day.Add(8*time.Hour), at),
		// later in the day
		booking(4, domain.BookingStatusPending, day.Add(14*time.Hour), day.Add(15*time.Hour)),
		// overlapping but terminal, ignored
		booking(5, domain.BookingStatusCancelled, day.Add(9*time.Hour), day.Add(11*time.Hour)),
	}

	assert.Equal(t, 2, CountConcurrent(bookings, at, nil))

	// excluding one of the counted bookings drops the count
	exclude := int64(1)
	assert.Equal(t, 1, CountConcurrent(bookings, at, &exclude))
}

// Fixture from the capacity policy: a mechanic limited to 2 concurrent
// services with two active bookings covering the proposed start instant
// has no room for a third, even though the existing bookings do not
// overlap each other.
func TestHasCapacity_AtLimit(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := day.Add(10 * time.Hour)

	mechanic := &domain.Mechanic{Status: domain.MechanicStatusActive, MaxConcurrentServices: 2}

	bookings := []*domain.Booking{
		booking(1, domain.BookingStatusPending, day.Add(9*time.Hour), day.Add(10*time.Hour+30*time.Minute)),
		booking(2, domain.BookingStatusInProgress, at, day.Add(11*time.Hour)),
	}

	assert.False(t, HasCapacity(mechanic, at, bookings, nil))

	// one slot earlier only booking 1 covers the instant
	assert.True(t, HasCapacity(mechanic, day.Add(9*time.Hour+30*time.Minute), bookings, nil))
}

func TestHasCapacity_DefaultLimit(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := day.Add(10 * time.Hour)

	// unset limit falls back to the policy default of 3
	mechanic := &domain.Mechanic{Status: domain.MechanicStatusActive}

	bookings := []*domain.Booking{
		booking(1, domain.BookingStatusPending, day.Add(9*time.Hour), day.Add(11*time.Hour)),
		booking(2, domain.BookingStatusPending, day.Add(9*time.Hour), day.Add(11*time.Hour)),
	}

	assert.True(t, HasCapacity(mechanic, at, bookings, nil))

	bookings = append(bookings, booking(3, domain.BookingStatusPending, day.Add(9*time.Hour), day.Add(11*time.Hour)))
	assert.False(t, HasCapacity(mechanic, at, bookings, nil))
}
