package clock_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dsamastery/internal/clock"
)

func TestMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday itself", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC), "2026-10-12"},
		{"mid week", time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC), "2026-10-12"},
		{"sunday belongs to previous monday", time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC), "2026-10-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clock.Day(clock.Monday(tt.in)))
		})
	}
}

func TestDaysBetween_IgnoresDSTLength(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is a 23-hour day in New York.
	before := time.Date(2026, 3, 7, 23, 30, 0, 0, loc)
	after := time.Date(2026, 3, 9, 0, 15, 0, 0, loc)
	assert.Equal(t, 2, clock.DaysBetween(before, after))
}

func TestFixed(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, at, clock.Fixed{T: at}.Now())
}
