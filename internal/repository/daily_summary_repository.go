package repository

import (
	"context"
	"time"

	"stock-news-digest/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailySummaryRepository defines the interface for daily summary data.
type DailySummaryRepository interface {
	Upsert(ctx context.Context, summary *entity.DailySummary) error
	FindByTickerAndDateRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.DailySummary, error)
	FindFirstByDateRange(ctx context.Context, start, end time.Time) (*entity.DailySummary, error)
}

// NewDailySummaryRepository creates a new instance of DailySummaryRepository.
func NewDailySummaryRepository(db *gorm.DB) DailySummaryRepository {
	return &dailySummaryRepository{db: db}
}

type dailySummaryRepository struct {
	db *gorm.DB
}

// Upsert writes the summary, replacing any existing row for the same
// (ticker, date) so re-running a roll-up never duplicates.
func (r *dailySummaryRepository) Upsert(ctx context.Context, summary *entity.DailySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "article_ids", "sources", "created_at"}),
	}).Create(summary).Error
}

// FindByTickerAndDateRange returns the ticker's daily summaries with date in
// [start, end] inclusive, ascending.
func (r *dailySummaryRepository) FindByTickerAndDateRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.DailySummary, error) {
	var summaries []entity.DailySummary
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ? AND date <= ?", ticker, datatypes.Date(start), datatypes.Date(end)).
		Order("date asc").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindFirstByDateRange returns any daily summary with date in [start, end),
// or (nil, nil) when none exists.
func (r *dailySummaryRepository) FindFirstByDateRange(ctx context.Context, start, end time.Time) (*entity.DailySummary, error) {
	var summary entity.DailySummary
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", datatypes.Date(start), datatypes.Date(end)).
		Order("date asc").
		First(&summary)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &summary, nil
}
