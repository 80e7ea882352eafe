package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

func activeMechanic() *domain.Mechanic {
	return &domain.Mechanic{
		ID:     7,
		Status: domain.MechanicStatusActive,
	}
}

func weekdayMechanic() *domain.Mechanic {
	m := activeMechanic()
	day := domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("17:00"),
	}
	m.WorkingHours = domain.WeeklySchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
	return m
}

// 2026-03-10 is a Tuesday.
func tuesday(hours, minutes int) time.Time {
	return time.Date(2026, 3, 10, hours, minutes, 0, 0, time.UTC)
}

func TestCheckAvailability_Admits(t *testing.T) {
	mechanic := weekdayMechanic()
	interval := domain.TimeInterval{Start: tuesday(10, 0), End: tuesday(12, 0)}

	err := CheckAvailability(mechanic, interval, nil, nil)
	assert.NoError(t, err)
}

func TestCheckAvailability_InvalidInterval(t *testing.T) {
	mechanic := weekdayMechanic()
	interval := domain.TimeInterval{Start: tuesday(12, 0), End: tuesday(10, 0)}

	err := CheckAvailability(mechanic, interval, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestCheckAvailability_MechanicUnavailable(t *testing.T) {
	interval := domain.TimeInterval{Start: tuesday(10, 0), End: tuesday(12, 0)}

	for _, status := range []domain.MechanicStatus{domain.MechanicStatusInactive, domain.MechanicStatusOnLeave} {
		mechanic := weekdayMechanic()
		mechanic.Status = status

		err := CheckAvailability(mechanic, interval, nil, nil)
		assert.ErrorIs(t, err, ErrMechanicUnavailable)
	}
}

func TestCheckAvailability_WorkingHours(t *testing.T) {
	mechanic := weekdayMechanic()

	tests := []struct {
		name     string
		interval domain.TimeInterval
		wantErr  bool
	}{
		{"inside hours", domain.TimeInterval{Start: tuesday(9, 0), End: tuesday(17, 0)}, false},
		{"starts too early", domain.TimeInterval{Start: tuesday(8, 0), End: tuesday(10, 0)}, true},
		{"ends too late", domain.TimeInterval{Start: tuesday(16, 0), End: tuesday(18, 0)}, true},
		{"day off", domain.TimeInterval{
			Start: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), // Saturday
			End:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(mechanic, tt.interval, nil, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutsideWorkingHours)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckAvailability_PolicyWindow(t *testing.T) {
	// no configured hours, the 08:00-20:00 policy window applies every day
	mechanic := activeMechanic()

	ok := domain.TimeInterval{Start: tuesday(8, 0), End: tuesday(20, 0)}
	assert.NoError(t, CheckAvailability(mechanic, ok, nil, nil))

	early := domain.TimeInterval{Start: tuesday(7, 0), End: tuesday(9, 0)}
	assert.ErrorIs(t, CheckAvailability(mechanic, early, nil, nil), ErrOutsideWorkingHours)

	late := domain.TimeInterval{Start: tuesday(19, 0), End: tuesday(21, 0)}
	assert.ErrorIs(t, CheckAvailability(mechanic, late, nil, nil), ErrOutsideWorkingHours)
}

func TestCheckAvailability_Conflict(t *testing.T) {
	mechanic := weekdayMechanic()
	existing := []*domain.Booking{
		booking(42, domain.BookingStatusPending, tuesday(10, 0), tuesday(12, 0)),
	}

	overlapping := domain.TimeInterval{Start: tuesday(11, 0), End: tuesday(13, 0)}
	err := CheckAvailability(mechanic, overlapping, existing, nil)
	require.ErrorIs(t, err, ErrConflict)

	// the conflict carries the blocking booking
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(42), conflict.BookingID)
}

func TestCheckAvailability_BackToBackAllowed(t *testing.T) {
	mechanic := weekdayMechanic()
	existing := []*domain.Booking{
		booking(42, domain.BookingStatusPending, tuesday(10, 0), tuesday(12, 0)),
	}

	// starts exactly when the existing one ends
	after := domain.TimeInterval{Start: tuesday(12, 0), End: tuesday(14, 0)}
	assert.NoError(t, CheckAvailability(mechanic, after, existing, nil))

	// ends exactly when the existing one starts
	before := domain.TimeInterval{Start: tuesday(9, 0), End: tuesday(10, 0)}
	assert.NoError(t, CheckAvailability(mechanic, before, existing, nil))
}

func TestCheckAvailability_TerminalBookingsIgnored(t *testing.T) {
	mechanic := weekdayMechanic()
	existing := []*domain.Booking{
		booking(42, domain.BookingStatusCancelled, tuesday(10, 0), tuesday(12, 0)),
		booking(43, domain.BookingStatusCompleted, tuesday(10, 0), tuesday(12, 0)),
	}

	interval := domain.TimeInterval{Start: tuesday(10, 0), End: tuesday(12, 0)}
	assert.NoError(t, CheckAvailability(mechanic, interval, existing, nil))
}

func TestCheckAvailability_ExcludesOwnBooking(t *testing.T) {
	mechanic := weekdayMechanic()
	existing := []*domain.Booking{
		booking(42, domain.BookingStatusPending, tuesday(10, 0), tuesday(12, 0)),
	}

	// moving booking 42 one hour later conflicts with itself unless excluded
	moved := domain.TimeInterval{Start: tuesday(11, 0), End: tuesday(13, 0)}

	err := CheckAvailability(mechanic, moved, existing, nil)
	assert.ErrorIs(t, err, ErrConflict)

	err = CheckAvailability(mechanic, moved, existing, ptr.Ptr(int64(42)))
	assert.NoError(t, err)
}

func TestCheckAvailability_MultiDayInterval(t *testing.T) {
	// a two-day job must satisfy the working hours of every day it spans
	mechanic := activeMechanic()

	spanning := domain.TimeInterval{
		Start: tuesday(19, 0),
		End:   time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
	}
	assert.ErrorIs(t, CheckAvailability(mechanic, spanning, nil, nil), ErrOutsideWorkingHours)
}
