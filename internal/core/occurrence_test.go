package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	oslo, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)

	// Monday 2026-03-02, 10:00 in Oslo.
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, oslo)

	tests := []struct {
		name  string
		day   Weekday
		start string
		want  time.Time
	}{
		{name: "later today", day: Monday, start: "11:00", want: time.Date(2026, 3, 2, 11, 0, 0, 0, oslo)},
		{name: "exactly now", day: Monday, start: "10:00", want: now},
		{name: "earlier today rolls a week", day: Monday, start: "09:00", want: time.Date(2026, 3, 9, 9, 0, 0, 0, oslo)},
		{name: "later this week", day: Thursday, start: "08:30", want: time.Date(2026, 3, 5, 8, 30, 0, 0, oslo)},
		{name: "sunday", day: Sunday, start: "12:00", want: time.Date(2026, 3, 8, 12, 0, 0, 0, oslo)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.day, tt.start, oslo, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNextOccurrence_CrossesDST(t *testing.T) {
	oslo, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)

	// Oslo moves to summer time on 2026-03-29.
	now := time.Date(2026, 3, 27, 12, 0, 0, 0, oslo)

	got, err := NextOccurrence(Monday, "09:00", oslo, now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-30T09:00:00+02:00", got.In(oslo).Format(time.RFC3339))
}

func TestNextOccurrence_Invalid(t *testing.T) {
	_, err := NextOccurrence("xyz", "09:00", time.UTC, time.Now())
	assert.Error(t, err)

	_, err = NextOccurrence(Monday, "9am", time.UTC, time.Now())
	assert.Error(t, err)
}
