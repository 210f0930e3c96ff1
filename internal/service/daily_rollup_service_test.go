package service

import (
	"context"
	"testing"
	"time"

	"stock-news-digest/internal/entity"
	"stock-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollUpDaily_CombinesSummariesAndDedupsSources(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{
		dates: []time.Time{day},
		byDate: map[string][]entity.Article{
			"2024-03-11": {
				{ID: 1, Ticker: "AAPL", Summary: "A.", Source: "Reuters", Status: entity.ArticleStatusProcessed},
				{ID: 2, Ticker: "AAPL", Summary: "B.", Source: "AP", Status: entity.ArticleStatusProcessed},
				{ID: 3, Ticker: "AAPL", Summary: "C.", Source: "Reuters", Status: entity.ArticleStatusProcessed},
			},
		},
	}
	daily := &fakeDailyRepo{}
	svc := NewDailyRollupService(articles, daily, logger.NewNop())

	err := svc.RollUpDaily(context.Background(), "AAPL")

	require.NoError(t, err)
	require.Len(t, daily.upserted, 1)
	got := daily.upserted[0]
	assert.Equal(t, "A. B. C.", got.Summary)
	assert.Equal(t, []string{"Reuters", "AP"}, []string(got.Sources))
	assert.Equal(t, []int64{1, 2, 3}, []int64(got.ArticleIDs))
	assert.Equal(t, day, time.Time(got.Date))
}

func TestRollUpDaily_OneSummaryPerDate(t *testing.T) {
	day1 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{
		dates: []time.Time{day1, day2},
		byDate: map[string][]entity.Article{
			"2024-03-11": {{ID: 1, Summary: "Monday news.", Source: "Reuters", Status: entity.ArticleStatusProcessed}},
			"2024-03-12": {{ID: 2, Summary: "Tuesday news.", Source: "AP", Status: entity.ArticleStatusProcessed}},
		},
	}
	daily := &fakeDailyRepo{}
	svc := NewDailyRollupService(articles, daily, logger.NewNop())

	require.NoError(t, svc.RollUpDaily(context.Background(), "AAPL"))

	require.Len(t, daily.upserted, 2)
	assert.Equal(t, "Monday news.", daily.upserted[0].Summary)
	assert.Equal(t, "Tuesday news.", daily.upserted[1].Summary)
}

func TestRollUpDaily_RerunReplacesInsteadOfDuplicating(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{
		dates: []time.Time{day},
		byDate: map[string][]entity.Article{
			"2024-03-11": {{ID: 1, Summary: "A.", Source: "Reuters", Status: entity.ArticleStatusProcessed}},
		},
	}
	daily := &fakeDailyRepo{}
	svc := NewDailyRollupService(articles, daily, logger.NewNop())

	require.NoError(t, svc.RollUpDaily(context.Background(), "AAPL"))
	require.NoError(t, svc.RollUpDaily(context.Background(), "AAPL"))

	assert.Len(t, daily.upserted, 1)
}

func TestRollUpDaily_NoArticles(t *testing.T) {
	daily := &fakeDailyRepo{}
	svc := NewDailyRollupService(&fakeArticleRepo{}, daily, logger.NewNop())

	err := svc.RollUpDaily(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Empty(t, daily.upserted)
}

func TestRollUpDaily_SkipsDatesWithOnlyUnprocessedArticles(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{
		dates: []time.Time{day},
		byDate: map[string][]entity.Article{
			"2024-03-11": {{ID: 1, Status: entity.ArticleStatusUnprocessed}},
		},
	}
	daily := &fakeDailyRepo{}
	svc := NewDailyRollupService(articles, daily, logger.NewNop())

	err := svc.RollUpDaily(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Empty(t, daily.upserted)
}

func TestFindDailyByRange_InvalidRange(t *testing.T) {
	svc := NewDailyRollupService(&fakeArticleRepo{}, &fakeDailyRepo{}, logger.NewNop())

	_, err := svc.FindDailyByRange(context.Background(), "Fortnight ago")

	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestFindDailyByRange_NoneFound(t *testing.T) {
	svc := NewDailyRollupService(&fakeArticleRepo{}, &fakeDailyRepo{}, logger.NewNop())

	got, err := svc.FindDailyByRange(context.Background(), "Yesterday")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJoinSummaries(t *testing.T) {
	assert.Equal(t, "A. B. C.", joinSummaries([]string{"A.", "B.", "C."}))
	assert.Equal(t, "A. C.", joinSummaries([]string{"A.", "", "  ", "C."}))
	assert.Equal(t, "", joinSummaries(nil))
}

func TestDedupSources(t *testing.T) {
	assert.Equal(t, []string{"Reuters", "AP"}, dedupSources([]string{"Reuters", "AP", "Reuters", ""}))
	assert.Empty(t, dedupSources(nil))
}
