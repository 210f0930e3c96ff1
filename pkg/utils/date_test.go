package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 3, 11, 17, 42, 9, 123, time.FixedZone("UTC+7", 7*3600))
	got := TruncateToDay(in)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestLastCompletedWeek(t *testing.T) {
	tests := []struct {
		name       string
		today      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "saturday mid-week-gap",
			today:      time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monday returns the week that just closed",
			today:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "sunday is not yet a completed week",
			today:      time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := LastCompletedWeek(tt.today)
			assert.Equal(t, tt.wantMonday, monday)
			assert.Equal(t, tt.wantSunday, sunday)
			assert.Equal(t, time.Monday, monday.Weekday())
			assert.Equal(t, time.Sunday, sunday.Weekday())
		})
	}
}

func TestWeekEnding(t *testing.T) {
	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	got := WeekEnding(monday)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Sunday, got.Weekday())
}
