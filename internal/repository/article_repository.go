package repository

import (
	"context"
	"fmt"
	"time"

	"stock-news-digest/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleRepository defines the interface for interacting with article data.
type ArticleRepository interface {
	CreateBatch(ctx context.Context, articles []*entity.Article) (int, error)
	LatestPublishedAt(ctx context.Context, ticker string) (*time.Time, error)
	FindUnprocessed(ctx context.Context, limit int) ([]entity.Article, error)
	MarkProcessed(ctx context.Context, ids []uint, summaries []string) error
	DistinctDates(ctx context.Context, ticker string) ([]time.Time, error)
	FindByTickerAndDate(ctx context.Context, ticker string, day time.Time) ([]entity.Article, error)
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

type articleRepository struct {
	db *gorm.DB
}

// CreateBatch inserts articles, silently skipping rows whose (ticker, url)
// already exists. Returns the number of rows actually inserted.
func (r *articleRepository) CreateBatch(ctx context.Context, articles []*entity.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "url"}},
		DoNothing: true,
	}).Create(&articles)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

// LatestPublishedAt returns the newest published timestamp stored for the
// ticker, or (nil, nil) when the ticker has no articles yet.
func (r *articleRepository) LatestPublishedAt(ctx context.Context, ticker string) (*time.Time, error) {
	var article entity.Article
	result := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("published_at desc").
		First(&article)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &article.PublishedAt, nil
}

// FindUnprocessed returns up to limit unprocessed articles ordered by id.
func (r *articleRepository) FindUnprocessed(ctx context.Context, limit int) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.ArticleStatusUnprocessed).
		Order("id asc").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// MarkProcessed applies a batch of summaries inside one transaction so a
// batch is either fully applied or not at all.
func (r *articleRepository) MarkProcessed(ctx context.Context, ids []uint, summaries []string) error {
	if len(ids) != len(summaries) {
		return fmt.Errorf("ids and summaries length mismatch: %d != %d", len(ids), len(summaries))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&entity.Article{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"summary": summaries[i],
					"status":  entity.ArticleStatusProcessed,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DistinctDates returns the distinct UTC calendar days on which the ticker
// has articles, in ascending order.
func (r *articleRepository) DistinctDates(ctx context.Context, ticker string) ([]time.Time, error) {
	rows, err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT DATE(published_at) AS day FROM articles WHERE ticker = ? ORDER BY day ASC`, ticker).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		dates = append(dates, day)
	}
	return dates, rows.Err()
}

// FindByTickerAndDate returns the ticker's articles published on the given
// UTC day, ordered by published timestamp then id so roll-up output is
// deterministic.
func (r *articleRepository) FindByTickerAndDate(ctx context.Context, ticker string, day time.Time) ([]entity.Article, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND published_at >= ? AND published_at < ?", ticker, start, end).
		Order("published_at asc, id asc").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}
