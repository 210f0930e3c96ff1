package service

import (
	"context"
	"time"

	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/entity"
)

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
	err       error
}

func (f *fakeCompanyRepo) FindBySymbol(ctx context.Context, symbol string) (*entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companies[symbol], nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context) ([]entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := make([]entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		all = append(all, *c)
	}
	return all, nil
}

type fakeArticleRepo struct {
	latest      *time.Time
	unprocessed []entity.Article
	dates       []time.Time
	byDate      map[string][]entity.Article

	created      []*entity.Article
	createdCount int
	processedIDs []uint
	summaries    []string
	batchCalls   int

	err error
}

func (f *fakeArticleRepo) CreateBatch(ctx context.Context, articles []*entity.Article) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, articles...)
	switch {
	case f.createdCount < 0: // every row conflicts with an existing one
		return 0, nil
	case f.createdCount > 0:
		return f.createdCount, nil
	default:
		return len(articles), nil
	}
}

func (f *fakeArticleRepo) LatestPublishedAt(ctx context.Context, ticker string) (*time.Time, error) {
	return f.latest, f.err
}

func (f *fakeArticleRepo) FindUnprocessed(ctx context.Context, limit int) ([]entity.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batchCalls++
	if limit > len(f.unprocessed) {
		limit = len(f.unprocessed)
	}
	return f.unprocessed[:limit], nil
}

func (f *fakeArticleRepo) MarkProcessed(ctx context.Context, ids []uint, summaries []string) error {
	if f.err != nil {
		return f.err
	}
	f.processedIDs = append(f.processedIDs, ids...)
	f.summaries = append(f.summaries, summaries...)
	f.unprocessed = f.unprocessed[len(ids):]
	return nil
}

func (f *fakeArticleRepo) DistinctDates(ctx context.Context, ticker string) ([]time.Time, error) {
	return f.dates, f.err
}

func (f *fakeArticleRepo) FindByTickerAndDate(ctx context.Context, ticker string, day time.Time) ([]entity.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[day.Format("2006-01-02")], nil
}

type fakeNewsRepo struct {
	stubs []dto.ProviderArticle
	err   error

	gotQuery string
	gotFrom  time.Time
	gotTo    time.Time
}

func (f *fakeNewsRepo) Search(ctx context.Context, query string, from, to time.Time) ([]dto.ProviderArticle, error) {
	f.gotQuery = query
	f.gotFrom = from
	f.gotTo = to
	return f.stubs, f.err
}

type fakeAIRepo struct {
	summarize func(articles []entity.Article) ([]string, error)
	calls     int
}

func (f *fakeAIRepo) SummarizeBatch(ctx context.Context, articles []entity.Article) ([]string, error) {
	f.calls++
	return f.summarize(articles)
}

type fakeScraper struct {
	content string
	failFor map[string]error
}

func (f *fakeScraper) Extract(ctx context.Context, url string) (string, error) {
	if err, ok := f.failFor[url]; ok {
		return "", err
	}
	return f.content, nil
}

type fakeDailyRepo struct {
	upserted []*entity.DailySummary
	byRange  map[string][]entity.DailySummary
	first    *entity.DailySummary
	err      error
}

func (f *fakeDailyRepo) Upsert(ctx context.Context, summary *entity.DailySummary) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.upserted {
		if existing.Ticker == summary.Ticker && time.Time(existing.Date).Equal(time.Time(summary.Date)) {
			f.upserted[i] = summary
			return nil
		}
	}
	f.upserted = append(f.upserted, summary)
	return nil
}

func (f *fakeDailyRepo) FindByTickerAndDateRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.DailySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byRange[start.Format("2006-01-02")], nil
}

func (f *fakeDailyRepo) FindFirstByDateRange(ctx context.Context, start, end time.Time) (*entity.DailySummary, error) {
	return f.first, f.err
}

type fakeWeeklyRepo struct {
	last     *time.Time
	upserted []*entity.WeeklySummary
	err      error
}

func (f *fakeWeeklyRepo) Upsert(ctx context.Context, summary *entity.WeeklySummary) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.upserted {
		if existing.Ticker == summary.Ticker && time.Time(existing.WeekEnding).Equal(time.Time(summary.WeekEnding)) {
			f.upserted[i] = summary
			return nil
		}
	}
	f.upserted = append(f.upserted, summary)
	return nil
}

func (f *fakeWeeklyRepo) LastWeekEnding(ctx context.Context, ticker string) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.upserted) > 0 {
		last := time.Time(f.upserted[len(f.upserted)-1].WeekEnding)
		return &last, nil
	}
	return f.last, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return f.err
}
