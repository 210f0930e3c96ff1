package consumer

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/service"
	"stock-news-digest/pkg/common"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// DigestConsumer consumes digest tasks from the Redis stream and runs the
// pipeline for each. It is a single sequential consumer: tasks run one at a
// time, which is the concurrency model the batcher and roll-ups expect.
type DigestConsumer struct {
	cfg          *config.Config
	redisClient  *redis.Client
	acquisition  service.AcquisitionService
	summarizer   service.SummarizerService
	dailyRollup  service.DailyRollupService
	weeklyRollup service.WeeklyRollupService
	logger       *logger.Logger
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// NewDigestConsumer creates a new DigestConsumer.
func NewDigestConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	acquisition service.AcquisitionService,
	summarizer service.SummarizerService,
	dailyRollup service.DailyRollupService,
	weeklyRollup service.WeeklyRollupService,
	log *logger.Logger,
) *DigestConsumer {
	return &DigestConsumer{
		cfg:          cfg,
		redisClient:  redisClient,
		acquisition:  acquisition,
		summarizer:   summarizer,
		dailyRollup:  dailyRollup,
		weeklyRollup: weeklyRollup,
		logger:       log,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the consumer's task processing loop.
func (c *DigestConsumer) Start(ctx context.Context) {
	c.ensureGroup(ctx)
	c.logger.Info("Digest consumer started")

	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Digest consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Digest consumer stopping")
				return
			default:
				c.readAndProcess(ctx)
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *DigestConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Digest consumer stopped")
}

func (c *DigestConsumer) ensureGroup(ctx context.Context) {
	err := c.redisClient.XGroupCreateMkStream(ctx, common.RedisStreamDigestTasks, common.RedisStreamGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		c.logger.Error("Failed to create consumer group", logger.ErrorField(err))
	}
}

func (c *DigestConsumer) readAndProcess(ctx context.Context) {
	streams, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamDigestTasks, ">"},
		Count:    1,
		Block:    5 * time.Second,
	}).Result()
	if err != nil {
		if err == redis.Nil || ctx.Err() != nil {
			return
		}
		c.logger.Error("Failed to read from digest stream", logger.ErrorField(err))
		return
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			c.handleMessage(ctx, message)
			if err := c.redisClient.XAck(ctx, common.RedisStreamDigestTasks, common.RedisStreamGroup, message.ID).Err(); err != nil {
				c.logger.Error("Failed to ack digest task", logger.ErrorField(err), logger.StringField("message_id", message.ID))
			}
		}
	}
}

func (c *DigestConsumer) handleMessage(ctx context.Context, message redis.XMessage) {
	payload, ok := message.Values["payload"].(string)
	if !ok {
		c.logger.Error("Digest task has no payload", logger.StringField("message_id", message.ID))
		return
	}

	var task dto.DigestTask
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		c.logger.Error("Failed to unmarshal digest task", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		return
	}

	c.logger.Info("Executing digest task",
		logger.StringField("type", task.Type),
		logger.StringField("ticker", task.Ticker),
	)

	switch task.Type {
	case dto.TaskTypeDailyDigest:
		c.runDailyDigest(ctx, task.Ticker)
	case dto.TaskTypeWeeklyDigest:
		if err := c.weeklyRollup.RollUpWeekly(ctx, task.Ticker); err != nil {
			c.logger.Error("Weekly roll-up failed", logger.ErrorField(err), logger.StringField("ticker", task.Ticker))
		}
	default:
		c.logger.Error("Unknown digest task type", logger.StringField("type", task.Type))
	}
}

// runDailyDigest runs the acquire -> summarize -> daily roll-up chain for
// one ticker. A failed step logs and stops the chain; the next scheduled
// run picks up where the store state left off.
func (c *DigestConsumer) runDailyDigest(ctx context.Context, ticker string) {
	if _, err := c.acquisition.AcquireNews(ctx, ticker); err != nil {
		c.logger.Error("Acquisition failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return
	}

	if _, err := c.summarizer.SummarizeUnprocessed(ctx, c.cfg.Digest.BatchSize); err != nil {
		c.logger.Error("Summarization failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return
	}

	if err := c.dailyRollup.RollUpDaily(ctx, ticker); err != nil {
		c.logger.Error("Daily roll-up failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
	}
}
