package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// WeeklySummary is the roll-up of a ticker's daily summaries for one
// Monday-Sunday week, keyed by the closing Sunday.
type WeeklySummary struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Ticker          string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_weekly_summaries_ticker_week" json:"ticker"`
	WeekEnding      datatypes.Date `gorm:"not null;uniqueIndex:idx_weekly_summaries_ticker_week" json:"week_ending"`
	Summary         string         `gorm:"type:text;not null" json:"summary"`
	DailySummaryIDs pq.Int64Array  `gorm:"type:bigint[]" json:"daily_summary_ids"`
	Sources         pq.StringArray `gorm:"type:text[]" json:"sources"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the WeeklySummary model.
func (WeeklySummary) TableName() string {
	return "weekly_summaries"
}
