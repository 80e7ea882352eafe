package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMechanic_ConcurrencyLimit(t *testing.T) {
	tests := []struct {
		name       string
		configured int
		want       int
	}{
		{"unset falls back to default", 0, DefaultMaxConcurrentServices},
		{"within range", 2, 2},
		{"at minimum", 1, 1},
		{"at maximum", 5, 5},
		{"below minimum clamps up", -3, 1},
		{"above maximum clamps down", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mechanic{MaxConcurrentServices: tt.configured}
			assert.Equal(t, tt.want, m.ConcurrencyLimit())
		})
	}
}

func TestMechanic_AcceptsBookings(t *testing.T) {
	assert.True(t, (&Mechanic{Status: MechanicStatusActive}).AcceptsBookings())
	assert.False(t, (&Mechanic{Status: MechanicStatusInactive}).AcceptsBookings())
	assert.False(t, (&Mechanic{Status: MechanicStatusOnLeave}).AcceptsBookings())
}

func TestWeeklySchedule_ForWeekday(t *testing.T) {
	open := "09:00"
	close := "17:00"
	w := WeeklySchedule{
		Monday: DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close},
	}

	monday := w.ForWeekday(time.Monday)
	assert.True(t, monday.IsOpen)
	assert.Equal(t, "09:00", *monday.OpenTime)

	tuesday := w.ForWeekday(time.Tuesday)
	assert.False(t, tuesday.IsOpen)
}

func TestWeeklySchedule_IsZero(t *testing.T) {
	assert.True(t, WeeklySchedule{}.IsZero())

	open := "09:00"
	close := "17:00"
	w := WeeklySchedule{Friday: DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}}
	assert.False(t, w.IsZero())
}
