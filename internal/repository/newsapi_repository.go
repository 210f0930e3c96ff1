package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/pkg/logger"
)

// newsAPIRepository queries a NewsAPI-style keyed text-search endpoint.
type newsAPIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a NewsRepository backed by a NewsAPI-style
// HTTP endpoint.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	perMinute := cfg.News.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)

	return &newsAPIRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// Search queries the everything endpoint for articles matching the query
// published within [from, to].
func (r *newsAPIRepository) Search(ctx context.Context, query string, from, to time.Time) ([]dto.ProviderArticle, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	pageSize := r.cfg.News.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	language := r.cfg.News.Language
	if language == "" {
		language = "en"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from.UTC().Format(time.RFC3339))
	params.Set("to", to.UTC().Format(time.RFC3339))
	params.Set("language", language)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("apiKey", r.cfg.News.APIKey)

	apiURL := fmt.Sprintf("%s/everything?%s", r.cfg.News.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to call news API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to call news API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from news API",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("news API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp dto.NewsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode news API response: %w", err)
	}

	articles := make([]dto.ProviderArticle, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		if a.URL == "" {
			continue
		}
		articles = append(articles, dto.ProviderArticle{
			Source:      a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt.UTC(),
		})
	}

	return articles, nil
}
