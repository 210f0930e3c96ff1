package service

import (
	"context"
	"time"

	"stock-news-digest/internal/entity"
	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/utils"

	"gorm.io/datatypes"
)

// DailyRollupService combines per-article summaries into one summary per
// calendar day.
type DailyRollupService interface {
	// RollUpDaily builds a daily summary for every calendar date on which
	// the ticker has articles. Idempotent: re-running replaces rather than
	// duplicates.
	RollUpDaily(ctx context.Context, ticker string) error

	// FindDailyByRange returns a daily summary for a named range such as
	// "Today" or "Yesterday", or (nil, nil) when none exists.
	FindDailyByRange(ctx context.Context, dateRange string) (*entity.DailySummary, error)
}

// NewDailyRollupService creates a new DailyRollupService.
func NewDailyRollupService(articleRepo repository.ArticleRepository, dailyRepo repository.DailySummaryRepository, log *logger.Logger) DailyRollupService {
	return &dailyRollupService{
		articleRepo: articleRepo,
		dailyRepo:   dailyRepo,
		logger:      log,
	}
}

type dailyRollupService struct {
	articleRepo repository.ArticleRepository
	dailyRepo   repository.DailySummaryRepository
	logger      *logger.Logger
}

// RollUpDaily enumerates the ticker's distinct article dates in ascending
// order and upserts one combined summary per date. Dates with no processed
// articles are logged and skipped.
func (s *dailyRollupService) RollUpDaily(ctx context.Context, ticker string) error {
	dates, err := s.articleRepo.DistinctDates(ctx, ticker)
	if err != nil {
		return storeErr(err)
	}

	if len(dates) == 0 {
		s.logger.Info("No article dates to roll up", logger.StringField("ticker", ticker))
		return nil
	}

	for _, day := range dates {
		if !utils.ShouldContinue(ctx, s.logger) {
			return ctx.Err()
		}

		articles, err := s.articleRepo.FindByTickerAndDate(ctx, ticker, day)
		if err != nil {
			return storeErr(err)
		}

		// Keep only processed articles: an unprocessed one has no summary
		// to contribute yet, and the day will be re-rolled once it does.
		summaries := make([]string, 0, len(articles))
		sources := make([]string, 0, len(articles))
		articleIDs := make([]int64, 0, len(articles))
		for _, article := range articles {
			if article.Status != entity.ArticleStatusProcessed {
				continue
			}
			summaries = append(summaries, article.Summary)
			sources = append(sources, article.Source)
			articleIDs = append(articleIDs, int64(article.ID))
		}

		if len(summaries) == 0 {
			s.logger.Info("No processed articles for date, skipping",
				logger.StringField("ticker", ticker),
				logger.StringField("date", day.Format("2006-01-02")),
			)
			continue
		}

		summary := &entity.DailySummary{
			Ticker:     ticker,
			Date:       datatypes.Date(utils.TruncateToDay(day)),
			Summary:    joinSummaries(summaries),
			ArticleIDs: articleIDs,
			Sources:    dedupSources(sources),
			CreatedAt:  time.Now().UTC(),
		}

		if err := s.dailyRepo.Upsert(ctx, summary); err != nil {
			return storeErr(err)
		}

		s.logger.Info("Rolled up daily summary",
			logger.StringField("ticker", ticker),
			logger.StringField("date", day.Format("2006-01-02")),
			logger.IntField("articles", len(articleIDs)),
		)
	}

	return nil
}

// FindDailyByRange resolves a named range to a start date and returns the
// first daily summary on that date.
func (s *dailyRollupService) FindDailyByRange(ctx context.Context, dateRange string) (*entity.DailySummary, error) {
	today := utils.TruncateToDay(time.Now().UTC())

	var start time.Time
	switch dateRange {
	case "Today":
		start = today
	case "Yesterday":
		start = today.AddDate(0, 0, -1)
	case "Week ago":
		start = today.AddDate(0, 0, -7)
	case "Month ago":
		start = today.AddDate(0, 0, -28)
	default:
		return nil, ErrInvalidRange
	}

	summary, err := s.dailyRepo.FindFirstByDateRange(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, storeErr(err)
	}
	return summary, nil
}
