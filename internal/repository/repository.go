package repository

import (
	"context"
	"time"

	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/entity"
)

// AIRepository defines the interface for the summarization model.
type AIRepository interface {
	// SummarizeBatch returns one summary per article, in matching order.
	SummarizeBatch(ctx context.Context, articles []entity.Article) ([]string, error)
}

// NewsRepository defines the interface for an external news source.
type NewsRepository interface {
	// Search returns article stubs matching the query published within
	// [from, to].
	Search(ctx context.Context, query string, from, to time.Time) ([]dto.ProviderArticle, error)
}
