package scheduling

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// CountConcurrent counts the active bookings whose interval contains the
// instant t under half-open containment (start <= t < end). This models
// "no more than N simultaneous services" at the reference point, not the
// total daily load.
func CountConcurrent(bookings []*domain.Booking, t time.Time, excludeBookingID *int64) int {
	count := 0
	for _, booking := range bookings {
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		if !booking.IsActive() {
			continue
		}
		if booking.Interval.Contains(t) {
			count++
		}
	}
	return count
}

// HasCapacity reports whether the mechanic can take one more booking
// starting at the given instant. The reference point is the proposed
// interval's start instant.
func HasCapacity(mechanic *domain.Mechanic, at time.Time, bookings []*domain.Booking, excludeBookingID *int64) bool {
	return CountConcurrent(bookings, at, excludeBookingID) < mechanic.ConcurrencyLimit()
}
