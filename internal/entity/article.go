package entity

import "time"

// ArticleStatus tracks whether an article has been summarized yet.
type ArticleStatus string

const (
	ArticleStatusUnprocessed ArticleStatus = "unprocessed"
	ArticleStatusProcessed   ArticleStatus = "processed"
)

// Article represents a scraped news article tied to a ticker. The (ticker,
// url) pair is the natural dedup key; a processed article always carries a
// non-empty summary.
type Article struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Ticker      string        `gorm:"type:varchar(16);not null;uniqueIndex:idx_articles_ticker_url;index:idx_articles_ticker_published" json:"ticker"`
	CompanyName string        `json:"company_name"`
	Source      string        `json:"source"`
	Author      string        `json:"author"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	URL         string        `gorm:"not null;uniqueIndex:idx_articles_ticker_url" json:"url"`
	ImageURL    string        `json:"image_url"`
	PublishedAt time.Time     `gorm:"not null;index:idx_articles_ticker_published" json:"published_at"`
	Content     string        `gorm:"type:text" json:"content"`
	Summary     string        `gorm:"type:text" json:"summary"`
	Status      ArticleStatus `gorm:"type:varchar(16);not null;default:unprocessed;index" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "articles"
}
