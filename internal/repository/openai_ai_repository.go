package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/entity"
	"stock-news-digest/pkg/logger"

	"golang.org/x/time/rate"
)

// openAIRepository is an implementation of AIRepository that uses the
// OpenAI chat completions API.
type openAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewOpenAIRepository creates a new instance of openAIRepository.
func NewOpenAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	perMinute := cfg.OpenAI.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)

	return &openAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// SummarizeBatch asks the model for one summary per article in a single call.
func (r *openAIRepository) SummarizeBatch(ctx context.Context, articles []entity.Article) ([]string, error) {
	prompt := BuildBatchSummaryPrompt(articles)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.OpenAIRequest{
		Model: r.cfg.OpenAI.Model,
		Messages: []dto.OpenAIMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/chat/completions", r.cfg.OpenAI.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.OpenAI.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to OpenAI API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from OpenAI API",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from OpenAI API: %d - %s", resp.StatusCode, string(body))
	}

	var openAIResp dto.OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(openAIResp.Choices) == 0 {
		return nil, fmt.Errorf("no content found in model response")
	}

	summaries, err := parseBatchSummaries(openAIResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	if len(summaries) != len(articles) {
		return nil, fmt.Errorf("model returned %d summaries for %d articles", len(summaries), len(articles))
	}

	return summaries, nil
}
