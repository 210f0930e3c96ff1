package service

import (
	"context"
	"fmt"

	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/utils"
)

// SummarizerService drains the unprocessed-article backlog through the
// summarization model in fixed-size batches.
type SummarizerService interface {
	// SummarizeUnprocessed returns the number of articles summarized.
	// The operation is process-wide, not ticker-scoped.
	SummarizeUnprocessed(ctx context.Context, batchSize int) (int, error)
}

// NewSummarizerService creates a new SummarizerService.
func NewSummarizerService(articleRepo repository.ArticleRepository, aiRepo repository.AIRepository, log *logger.Logger, defaultBatchSize int) SummarizerService {
	if defaultBatchSize <= 0 {
		defaultBatchSize = 8
	}
	return &summarizerService{
		articleRepo:      articleRepo,
		aiRepo:           aiRepo,
		logger:           log,
		defaultBatchSize: defaultBatchSize,
	}
}

type summarizerService struct {
	articleRepo      repository.ArticleRepository
	aiRepo           repository.AIRepository
	logger           *logger.Logger
	defaultBatchSize int
}

// SummarizeUnprocessed pulls unprocessed articles batch by batch, makes one
// model call per batch and applies each batch's summaries as a single
// transactional update. A failed batch stays unprocessed and stops the run.
// Cancellation is honored only between batches to keep batches atomic.
func (s *summarizerService) SummarizeUnprocessed(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = s.defaultBatchSize
	}

	total := 0
	for utils.ShouldContinue(ctx, s.logger) {
		batch, err := s.articleRepo.FindUnprocessed(ctx, batchSize)
		if err != nil {
			return total, storeErr(err)
		}
		if len(batch) == 0 {
			break
		}

		summaries, err := s.aiRepo.SummarizeBatch(ctx, batch)
		if err != nil {
			s.logger.Error("Batch summarization failed, articles remain unprocessed",
				logger.ErrorField(err),
				logger.IntField("batch_size", len(batch)),
			)
			return total, fmt.Errorf("%w: %v", ErrModelInference, err)
		}
		if len(summaries) != len(batch) {
			return total, fmt.Errorf("%w: got %d summaries for %d articles", ErrModelInference, len(summaries), len(batch))
		}

		ids := make([]uint, len(batch))
		for i, article := range batch {
			ids[i] = article.ID
		}

		if err := s.articleRepo.MarkProcessed(ctx, ids, summaries); err != nil {
			return total, storeErr(err)
		}

		total += len(batch)
		s.logger.Info("Summarized batch",
			logger.IntField("batch_size", len(batch)),
			logger.IntField("total", total),
		)
		// batch, summaries and ids go out of scope here, so peak memory
		// stays bounded by one batch regardless of backlog size.
	}

	return total, nil
}
