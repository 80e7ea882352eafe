package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(t *testing.T, start, end string) TimeInterval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	return TimeInterval{Start: s, End: e}
}

func TestNewTimeInterval(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	i, err := NewTimeInterval(start, end)
	require.NoError(t, err)
	assert.Equal(t, start, i.Start)
	assert.Equal(t, 2*time.Hour, i.Duration())
}

func TestNewTimeInterval_Invalid(t *testing.T) {
	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	// end before start
	_, err := NewTimeInterval(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// zero-length interval
	_, err = NewTimeInterval(start, start)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// missing instants
	_, err = NewTimeInterval(time.Time{}, start)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := interval(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z")

	tests := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"identical", interval(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z"), true},
		{"contained", interval(t, "2026-03-10T10:30:00Z", "2026-03-10T11:30:00Z"), true},
		{"overlaps start", interval(t, "2026-03-10T09:00:00Z", "2026-03-10T10:30:00Z"), true},
		{"overlaps end", interval(t, "2026-03-10T11:30:00Z", "2026-03-10T13:00:00Z"), true},
		{"covers", interval(t, "2026-03-10T09:00:00Z", "2026-03-10T13:00:00Z"), true},
		{"back-to-back before", interval(t, "2026-03-10T08:00:00Z", "2026-03-10T10:00:00Z"), false},
		{"back-to-back after", interval(t, "2026-03-10T12:00:00Z", "2026-03-10T14:00:00Z"), false},
		{"disjoint", interval(t, "2026-03-10T14:00:00Z", "2026-03-10T15:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	i := interval(t, "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z")

	// start is included, end is excluded
	assert.True(t, i.Contains(i.Start))
	assert.True(t, i.Contains(i.Start.Add(time.Hour)))
	assert.False(t, i.Contains(i.End))
	assert.False(t, i.Contains(i.Start.Add(-time.Second)))
}
