package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// DailySummary is the roll-up of one ticker's article summaries for a single
// calendar day. At most one row exists per (ticker, date).
type DailySummary struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Ticker     string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_daily_summaries_ticker_date" json:"ticker"`
	Date       datatypes.Date `gorm:"not null;uniqueIndex:idx_daily_summaries_ticker_date" json:"date"`
	Summary    string         `gorm:"type:text;not null" json:"summary"`
	ArticleIDs pq.Int64Array  `gorm:"type:bigint[]" json:"article_ids"`
	Sources    pq.StringArray `gorm:"type:text[]" json:"sources"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the DailySummary model.
func (DailySummary) TableName() string {
	return "daily_summaries"
}
