package service

import (
	"context"
	"testing"
	"time"

	"stock-news-digest/internal/entity"
	"stock-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newWeeklySvc(daily *fakeDailyRepo, weekly *fakeWeeklyRepo, notifier *fakeNotifier) *weeklyRollupService {
	return NewWeeklyRollupService(daily, weekly, notifier, logger.NewNop()).(*weeklyRollupService)
}

func TestRollUpWeekly_FirstRunRollsLastCompletedWeek(t *testing.T) {
	// Saturday; the last completed week is Mon Jan 8 - Sun Jan 14.
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)

	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-08": {
			{ID: 10, Ticker: "AAPL", Summary: "Mon recap.", Sources: []string{"Reuters"}},
			{ID: 11, Ticker: "AAPL", Summary: "Wed recap.", Sources: []string{"AP", "Reuters"}},
		},
	}}
	weekly := &fakeWeeklyRepo{}
	notifier := &fakeNotifier{}
	svc := newWeeklySvc(daily, weekly, notifier)

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	require.Len(t, weekly.upserted, 1)
	got := weekly.upserted[0]
	assert.Equal(t, sunday, time.Time(got.WeekEnding))
	assert.Equal(t, "Mon recap. Wed recap.", got.Summary)
	assert.Equal(t, []string{"Reuters", "AP"}, []string(got.Sources))
	assert.Equal(t, []int64{10, 11}, []int64(got.DailySummaryIDs))
	assert.Len(t, notifier.messages, 1)
}

func TestRollUpWeekly_NeverWritesFutureWeek(t *testing.T) {
	// Watermark at the most recent completed Sunday: nothing to do.
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)

	weekly := &fakeWeeklyRepo{last: &last}
	svc := newWeeklySvc(&fakeDailyRepo{}, weekly, &fakeNotifier{})

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	assert.Empty(t, weekly.upserted)
}

func TestRollUpWeekly_CatchesUpOverMissedWeeks(t *testing.T) {
	// Watermark is three completed weeks behind today.
	today := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC) // Saturday
	last := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)  // Sunday

	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-08": {{ID: 1, Summary: "Week one.", Sources: []string{"Reuters"}}},
		"2024-01-15": {{ID: 2, Summary: "Week two.", Sources: []string{"AP"}}},
		"2024-01-22": {{ID: 3, Summary: "Week three.", Sources: []string{"Bloomberg"}}},
	}}
	weekly := &fakeWeeklyRepo{last: &last}
	svc := newWeeklySvc(daily, weekly, &fakeNotifier{})

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	require.Len(t, weekly.upserted, 3)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), time.Time(weekly.upserted[0].WeekEnding))
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), time.Time(weekly.upserted[1].WeekEnding))
	assert.Equal(t, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC), time.Time(weekly.upserted[2].WeekEnding))
}

func TestRollUpWeekly_SkipsEmptyWeeksButAdvances(t *testing.T) {
	today := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	// Only the last of the three pending weeks has data.
	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-22": {{ID: 3, Summary: "Week three.", Sources: []string{"Reuters"}}},
	}}
	weekly := &fakeWeeklyRepo{last: &last}
	svc := newWeeklySvc(daily, weekly, &fakeNotifier{})

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	require.Len(t, weekly.upserted, 1)
	assert.Equal(t, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC), time.Time(weekly.upserted[0].WeekEnding))
}

func TestRollUpWeekly_RerunReplacesInsteadOfDuplicating(t *testing.T) {
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-08": {{ID: 1, Summary: "Recap.", Sources: []string{"Reuters"}}},
	}}
	weekly := &fakeWeeklyRepo{}
	svc := newWeeklySvc(daily, weekly, &fakeNotifier{})

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))
	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	assert.Len(t, weekly.upserted, 1)
}

func TestRollUpWeekly_NotifierFailureDoesNotFailRollup(t *testing.T) {
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-08": {{ID: 1, Summary: "Recap.", Sources: []string{"Reuters"}}},
	}}
	weekly := &fakeWeeklyRepo{}
	notifier := &fakeNotifier{err: assert.AnError}
	svc := newWeeklySvc(daily, weekly, notifier)

	require.NoError(t, svc.rollUpWeeksThrough(context.Background(), "AAPL", today))

	assert.Len(t, weekly.upserted, 1)
}

func TestRollUpWeekly_WatermarkIsPerTicker(t *testing.T) {
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	daily := &fakeDailyRepo{byRange: map[string][]entity.DailySummary{
		"2024-01-08": {{ID: 1, Summary: "Recap.", Sources: []string{"Reuters"}}},
	}}

	// AAPL is caught up; MSFT has never been rolled up. MSFT must still
	// get the last completed week.
	aaplWeekly := &fakeWeeklyRepo{upserted: []*entity.WeeklySummary{
		{Ticker: "AAPL", WeekEnding: datatypes.Date(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC))},
	}}
	msftWeekly := &fakeWeeklyRepo{}

	require.NoError(t, newWeeklySvc(daily, aaplWeekly, &fakeNotifier{}).rollUpWeeksThrough(context.Background(), "AAPL", today))
	require.NoError(t, newWeeklySvc(daily, msftWeekly, &fakeNotifier{}).rollUpWeeksThrough(context.Background(), "MSFT", today))

	assert.Len(t, aaplWeekly.upserted, 1)
	require.Len(t, msftWeekly.upserted, 1)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), time.Time(msftWeekly.upserted[0].WeekEnding))
}
