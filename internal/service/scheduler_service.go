package service

import (
	"context"
	"encoding/json"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/common"
	"stock-news-digest/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// SchedulerService enqueues digest tasks on cron triggers. Execution
// happens in the stream consumer, so a slow pipeline run never blocks the
// next trigger from being recorded.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(companyRepo repository.CompanyRepository, redisClient *redis.Client, log *logger.Logger, cfg *config.Config) SchedulerService {
	return &schedulerService{
		companyRepo: companyRepo,
		redisClient: redisClient,
		logger:      log,
		cfg:         cfg,
		cron:        cron.New(),
	}
}

type schedulerService struct {
	companyRepo repository.CompanyRepository
	redisClient *redis.Client
	logger      *logger.Logger
	cfg         *config.Config
	cron        *cron.Cron
}

// Start registers the daily and weekly cron entries and runs the scheduler
// until the context is canceled.
func (s *schedulerService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Digest.DailyCron, func() {
		s.publishDigestTasks(ctx, dto.TaskTypeDailyDigest)
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.cfg.Digest.WeeklyCron, func() {
		s.publishDigestTasks(ctx, dto.TaskTypeWeeklyDigest)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Digest scheduler started",
		logger.StringField("daily_cron", s.cfg.Digest.DailyCron),
		logger.StringField("weekly_cron", s.cfg.Digest.WeeklyCron),
	)

	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop stops the cron scheduler, waiting for in-flight trigger functions.
func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Digest scheduler stopped")
}

// publishDigestTasks enqueues one task per known company onto the digest
// stream.
func (s *schedulerService) publishDigestTasks(ctx context.Context, taskType string) {
	companies, err := s.companyRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list companies for scheduling", logger.ErrorField(err))
		return
	}

	for _, company := range companies {
		task := dto.DigestTask{Type: taskType, Ticker: company.Symbol}
		payload, err := json.Marshal(task)
		if err != nil {
			s.logger.Error("Failed to marshal digest task", logger.ErrorField(err), logger.StringField("ticker", company.Symbol))
			continue
		}

		if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: common.RedisStreamDigestTasks,
			Values: map[string]interface{}{"payload": payload},
			MaxLen: s.cfg.Redis.StreamMaxLen,
		}).Err(); err != nil {
			s.logger.Error("Failed to enqueue digest task",
				logger.ErrorField(err),
				logger.StringField("ticker", company.Symbol),
				logger.StringField("type", taskType),
			)
			continue
		}

		s.logger.Info("Digest task published",
			logger.StringField("ticker", company.Symbol),
			logger.StringField("type", taskType),
		)
	}
}
