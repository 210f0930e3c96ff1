package repository

import (
	"context"
	"time"

	"stock-news-digest/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WeeklySummaryRepository defines the interface for weekly summary data.
type WeeklySummaryRepository interface {
	Upsert(ctx context.Context, summary *entity.WeeklySummary) error
	LastWeekEnding(ctx context.Context, ticker string) (*time.Time, error)
}

// NewWeeklySummaryRepository creates a new instance of WeeklySummaryRepository.
func NewWeeklySummaryRepository(db *gorm.DB) WeeklySummaryRepository {
	return &weeklySummaryRepository{db: db}
}

type weeklySummaryRepository struct {
	db *gorm.DB
}

// Upsert writes the summary, replacing any existing row for the same
// (ticker, week_ending).
func (r *weeklySummaryRepository) Upsert(ctx context.Context, summary *entity.WeeklySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "week_ending"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "daily_summary_ids", "sources", "created_at"}),
	}).Create(summary).Error
}

// LastWeekEnding returns the most recent week-ending date stored for the
// ticker, or (nil, nil) when the ticker has no weekly summaries yet. The
// watermark is per ticker so one ticker's progress never hides another's
// missed weeks.
func (r *weeklySummaryRepository) LastWeekEnding(ctx context.Context, ticker string) (*time.Time, error) {
	var summary entity.WeeklySummary
	result := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("week_ending desc").
		First(&summary)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	weekEnding := time.Time(summary.WeekEnding)
	return &weekEnding, nil
}
