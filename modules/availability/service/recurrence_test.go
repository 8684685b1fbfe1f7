package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduleentity "go-booking-api/modules/schedule/entity"
)

func rule(day int, start, end string) scheduleentity.AvailabilityRule {
	return scheduleentity.AvailabilityRule{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
}

func TestExpandRulesWeekly(t *testing.T) {
	loc := time.UTC
	// Monday March 2 through Sunday March 8, 2026.
	rangeStart := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	windows, err := ExpandRules([]scheduleentity.AvailabilityRule{
		rule(1, "09:00", "17:00"), // Monday
		rule(3, "10:00", "12:00"), // Wednesday
	}, rangeStart, rangeEnd, loc)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, loc), windows[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, loc), windows[0].End)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, loc), windows[1].Start)
	assert.Equal(t, time.Date(2026, 3, 4, 12, 0, 0, 0, loc), windows[1].End)
}

func TestExpandRulesSkipsInactive(t *testing.T) {
	loc := time.UTC
	r := rule(1, "09:00", "17:00")
	r.IsActive = false

	windows, err := ExpandRules([]scheduleentity.AvailabilityRule{r},
		time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		time.Date(2026, 3, 9, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestExpandRulesDSTSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Sunday March 8, 2026: clocks jump from 02:00 to 03:00.
	rangeStart := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	windows, err := ExpandRules([]scheduleentity.AvailabilityRule{
		rule(0, "09:00", "17:00"),
	}, rangeStart, rangeEnd, loc)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	// Wall-clock times hold; the owner still works local 9 to 5.
	assert.Equal(t, 9, windows[0].Start.Hour())
	assert.Equal(t, 17, windows[0].End.Hour())
	assert.Equal(t, 8*time.Hour, windows[0].Duration())
}

func TestExpandRulesDSTFallBack(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Sunday November 1, 2026: clocks fall back from 02:00 to 01:00.
	rangeStart := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2026, 11, 2, 0, 0, 0, 0, loc)

	windows, err := ExpandRules([]scheduleentity.AvailabilityRule{
		rule(0, "09:00", "17:00"),
	}, rangeStart, rangeEnd, loc)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	assert.Equal(t, 9, windows[0].Start.Hour())
	assert.Equal(t, 17, windows[0].End.Hour())
}

func TestExpandRulesRejectsBadRules(t *testing.T) {
	loc := time.UTC
	rangeStart := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	tests := []struct {
		name string
		rule scheduleentity.AvailabilityRule
	}{
		{"day out of range", rule(7, "09:00", "17:00")},
		{"negative day", rule(-1, "09:00", "17:00")},
		{"end before start", rule(1, "17:00", "09:00")},
		{"end equals start", rule(1, "09:00", "09:00")},
		{"unparseable time", rule(1, "nine", "17:00")},
		{"hour out of range", rule(1, "25:00", "26:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandRules([]scheduleentity.AvailabilityRule{tt.rule}, rangeStart, rangeEnd, loc)
			assert.Error(t, err)
		})
	}
}

func TestExpandRulesEmptyRange(t *testing.T) {
	loc := time.UTC
	at := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	windows, err := ExpandRules([]scheduleentity.AvailabilityRule{
		rule(1, "09:00", "17:00"),
	}, at, at, loc)
	require.NoError(t, err)
	assert.Empty(t, windows)
}
