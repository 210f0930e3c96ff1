package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/entity"
	"stock-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scraper.Workers = 2
	cfg.News.LookbackDays = 7
	cfg.Digest.BatchSize = 10
	return cfg
}

func newTestAcquisition(companies *fakeCompanyRepo, articles *fakeArticleRepo, news *fakeNewsRepo, sc *fakeScraper) AcquisitionService {
	return NewAcquisitionService(companies, articles, news, sc, logger.NewNop(), testConfig())
}

func TestAcquireNews_CompanyNotFound(t *testing.T) {
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{}},
		&fakeArticleRepo{},
		&fakeNewsRepo{},
		&fakeScraper{},
	)

	inserted, err := svc.AcquireNews(context.Background(), "ZZZZ")

	require.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Equal(t, 0, inserted)
}

func TestAcquireNews_SourceUnavailable(t *testing.T) {
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		&fakeArticleRepo{},
		&fakeNewsRepo{err: errors.New("connection refused")},
		&fakeScraper{},
	)

	_, err := svc.AcquireNews(context.Background(), "AAPL")

	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestAcquireNews_QueryCombinesNameAndSymbol(t *testing.T) {
	news := &fakeNewsRepo{}
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		&fakeArticleRepo{},
		news,
		&fakeScraper{},
	)

	inserted, err := svc.AcquireNews(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, `"Apple Inc." OR AAPL`, news.gotQuery)
}

func TestAcquireNews_DefaultWindowWithoutWatermark(t *testing.T) {
	news := &fakeNewsRepo{}
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		&fakeArticleRepo{latest: nil},
		news,
		&fakeScraper{},
	)

	_, err := svc.AcquireNews(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), news.gotFrom, time.Minute)
	assert.WithinDuration(t, time.Now().UTC(), news.gotTo, time.Minute)
}

func TestAcquireNews_WatermarkWindow(t *testing.T) {
	watermark := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	news := &fakeNewsRepo{}
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		&fakeArticleRepo{latest: &watermark},
		news,
		&fakeScraper{},
	)

	_, err := svc.AcquireNews(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, watermark, news.gotFrom)
}

func TestAcquireNews_DropsFailedScrapes(t *testing.T) {
	published := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{}
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		articles,
		&fakeNewsRepo{stubs: []dto.ProviderArticle{
			{Title: "Good one", URL: "https://news.example/a", Source: "Reuters", PublishedAt: published},
			{Title: "Paywalled", URL: "https://news.example/b", Source: "AP", PublishedAt: published},
		}},
		&fakeScraper{
			content: "Full article body.",
			failFor: map[string]error{"https://news.example/b": errors.New("status 403")},
		},
	)

	inserted, err := svc.AcquireNews(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	require.Len(t, articles.created, 1)
	assert.Equal(t, "https://news.example/a", articles.created[0].URL)
	assert.Equal(t, "Full article body.", articles.created[0].Content)
	assert.Equal(t, entity.ArticleStatusUnprocessed, articles.created[0].Status)
}

func TestAcquireNews_RefetchOfKnownArticlesInsertsZero(t *testing.T) {
	articles := &fakeArticleRepo{createdCount: -1} // store reports every row as a conflict
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		articles,
		&fakeNewsRepo{stubs: []dto.ProviderArticle{
			{Title: "Seen before", URL: "https://news.example/a", PublishedAt: time.Now()},
		}},
		&fakeScraper{content: "Body."},
	)

	inserted, err := svc.AcquireNews(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestAcquireNews_AllScrapesFail(t *testing.T) {
	articles := &fakeArticleRepo{}
	svc := newTestAcquisition(
		&fakeCompanyRepo{companies: map[string]*entity.Company{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc."},
		}},
		articles,
		&fakeNewsRepo{stubs: []dto.ProviderArticle{
			{Title: "Gone", URL: "https://news.example/x", PublishedAt: time.Now()},
		}},
		&fakeScraper{failFor: map[string]error{"https://news.example/x": errors.New("status 404")}},
	)

	inserted, err := svc.AcquireNews(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Empty(t, articles.created)
}

func TestFetchWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	lookback := 7 * 24 * time.Hour

	t.Run("no watermark falls back to lookback", func(t *testing.T) {
		from, to := fetchWindow(nil, now, lookback)
		assert.Equal(t, now.AddDate(0, 0, -7), from)
		assert.Equal(t, now, to)
	})

	t.Run("watermark wins over lookback", func(t *testing.T) {
		latest := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
		from, to := fetchWindow(&latest, now, lookback)
		assert.Equal(t, latest, from)
		assert.Equal(t, now, to)
	})
}
