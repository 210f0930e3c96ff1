package service

import (
	"context"
	"time"

	"stock-news-digest/internal/entity"
	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/telegram"
	"stock-news-digest/pkg/utils"

	"gorm.io/datatypes"
)

// WeeklyRollupService combines daily summaries into Monday-Sunday weekly
// summaries keyed by the closing Sunday.
type WeeklyRollupService interface {
	// RollUpWeekly advances week by week from the ticker's watermark up to
	// the last completed week, catching up over any missed weeks in one
	// call. Idempotent: re-running replaces rather than duplicates.
	RollUpWeekly(ctx context.Context, ticker string) error
}

// NewWeeklyRollupService creates a new WeeklyRollupService. The notifier
// may be a NopNotifier when notifications are disabled.
func NewWeeklyRollupService(dailyRepo repository.DailySummaryRepository, weeklyRepo repository.WeeklySummaryRepository, notifier telegram.Notifier, log *logger.Logger) WeeklyRollupService {
	return &weeklyRollupService{
		dailyRepo:  dailyRepo,
		weeklyRepo: weeklyRepo,
		notifier:   notifier,
		logger:     log,
	}
}

type weeklyRollupService struct {
	dailyRepo  repository.DailySummaryRepository
	weeklyRepo repository.WeeklySummaryRepository
	notifier   telegram.Notifier
	logger     *logger.Logger
}

// RollUpWeekly rolls up all completed weeks up to today.
func (s *weeklyRollupService) RollUpWeekly(ctx context.Context, ticker string) error {
	return s.rollUpWeeksThrough(ctx, ticker, utils.TruncateToDay(time.Now().UTC()))
}

// rollUpWeeksThrough is the clock-independent core of RollUpWeekly. It
// starts from the Monday after the ticker's last stored week-ending, or
// from the last fully completed week when no watermark exists, and never
// writes a week whose Sunday is after today.
func (s *weeklyRollupService) rollUpWeeksThrough(ctx context.Context, ticker string, today time.Time) error {
	last, err := s.weeklyRepo.LastWeekEnding(ctx, ticker)
	if err != nil {
		return storeErr(err)
	}

	var monday time.Time
	if last != nil {
		monday = utils.TruncateToDay(*last).AddDate(0, 0, 1)
	} else {
		monday, _ = utils.LastCompletedWeek(today)
	}

	for utils.ShouldContinue(ctx, s.logger) {
		sunday := utils.WeekEnding(monday)
		if sunday.After(today) {
			break
		}

		dailies, err := s.dailyRepo.FindByTickerAndDateRange(ctx, ticker, monday, sunday)
		if err != nil {
			return storeErr(err)
		}

		if len(dailies) == 0 {
			s.logger.Info("No daily summaries for week, skipping",
				logger.StringField("ticker", ticker),
				logger.StringField("week_ending", sunday.Format("2006-01-02")),
			)
			monday = monday.AddDate(0, 0, 7)
			continue
		}

		summaries := make([]string, 0, len(dailies))
		sources := make([]string, 0, len(dailies))
		dailyIDs := make([]int64, 0, len(dailies))
		for _, daily := range dailies {
			summaries = append(summaries, daily.Summary)
			sources = append(sources, daily.Sources...)
			dailyIDs = append(dailyIDs, int64(daily.ID))
		}

		weekly := &entity.WeeklySummary{
			Ticker:          ticker,
			WeekEnding:      datatypes.Date(sunday),
			Summary:         joinSummaries(summaries),
			DailySummaryIDs: dailyIDs,
			Sources:         dedupSources(sources),
			CreatedAt:       time.Now().UTC(),
		}

		if err := s.weeklyRepo.Upsert(ctx, weekly); err != nil {
			return storeErr(err)
		}

		s.logger.Info("Rolled up weekly summary",
			logger.StringField("ticker", ticker),
			logger.StringField("week_ending", sunday.Format("2006-01-02")),
			logger.IntField("days", len(dailyIDs)),
		)

		if err := s.notifier.SendMessage(telegram.FormatWeeklyDigest(ticker, sunday, weekly.Summary, weekly.Sources)); err != nil {
			s.logger.Error("Failed to send weekly digest notification", logger.ErrorField(err))
		}

		monday = monday.AddDate(0, 0, 7)
	}

	return nil
}
